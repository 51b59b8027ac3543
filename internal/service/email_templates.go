package service

import "fmt"

func magicLinkEmailTemplate(magicURL, appName string) (string, string) {
	subject := fmt.Sprintf("Sign in to %s", appName)
	body := fmt.Sprintf(`Click this link to sign in to your account:
%s

This link expires in 10 minutes and can only be used once.

If you didn't request this, ignore this email.

Best,
The %s Team`, magicURL, appName)

	return subject, body
}

func forgotPasswordEmailTemplate(signInURL, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your password for %s", appName)
	body := fmt.Sprintf(`You requested to reset your password. For security, we'll remove your password and sign you in with this link:
%s

After signing in, you can set a new password in Settings.

This link expires in 10 minutes and can only be used once.

If you didn't request this, you can safely ignore this email. Your password won't be changed.

Best,
The %s Team`, signInURL, appName)

	return subject, body
}

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is active. Plant your first goal and start growing!

Get started: %s

If you have questions, reach out to our support team.

Best,
The %s Team`, name, dashboardURL, appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account has been permanently deleted from %s.

All your data, including your goals, notes, and evaluation history, has been removed from our systems.

If you didn't request this deletion, please contact our support team immediately, though we won't be able to recover your account.

We're sorry to see you go. If you change your mind, you're welcome to create a new account anytime.

Best,
The %s Team`, name, appName, appName)

	return subject, body
}

func meetingScheduledEmailTemplate(name, date, timeOfDay, topic, appName string) (string, string) {
	subject := fmt.Sprintf("Mentor meeting scheduled for %s", date)
	when := date
	if timeOfDay != "" {
		when = fmt.Sprintf("%s at %s", date, timeOfDay)
	}
	body := fmt.Sprintf(`Hi %s,

Your mentor meeting is scheduled for %s.`, name, when)
	if topic != "" {
		body += fmt.Sprintf("\n\nTopic: %s", topic)
	}
	body += fmt.Sprintf(`

Come prepared with your recent goal evaluations so you can make the most of the conversation.

Best,
The %s Team`, appName)

	return subject, body
}
