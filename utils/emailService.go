package utils

import (
	"fmt"
	"log"
	"net/smtp"

	"learnhub/config"
)

// SendEnrollmentEmail sends a confirmation once a course purchase is
// verified. Failures are logged, never surfaced to the caller.
func SendEnrollmentEmail(email, userName, courseName string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password
	if from == "" || password == "" {
		log.Println("Email sender not configured, skipping enrollment email")
		return nil
	}

	to := []string{email}

	subject := "Subject: Course Enrollment Confirmation\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Enrollment Confirmed</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your payment went through and you now have full access to:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<p style="font-size: 14px; color: #999999; text-align: center; margin-top: 30px;">Happy Learning!</p>
				</div>
			</body>
		</html>
	`, userName, courseName)

	message := []byte(subject + "\n" + body)
	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		log.Printf("Error sending enrollment email: %v", err)
		return err
	}

	return nil
}
