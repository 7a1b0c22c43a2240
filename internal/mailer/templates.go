package mailer

import (
	"fmt"
	"net/url"
	"strings"
)

// Message is one rendered email ready for the sender.
type Message struct {
	To      string
	Subject string
	Body    string
}

// BookingReceivedMessage renders the acknowledgment sent right after a
// visitor submits a booking.
func BookingReceivedMessage(to, name, eventDate string) Message {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for your booking request. We have received your reservation for %s.\n\n"+
			"Our team will review it and confirm shortly. You will receive another email once the status of your booking changes.\n\n"+
			"Warm regards,\nNB Films Studio",
		name, eventDate,
	)
	return Message{
		To:      to,
		Subject: "We received your booking request",
		Body:    body,
	}
}

// StatusChangedMessage renders the status transition email. The completed
// variant carries a feedback link so the visitor can rate the package.
func StatusChangedMessage(to, name, status, servicePackage, feedbackBaseURL string) Message {
	subject := fmt.Sprintf("Booking Status Update: %s - %s", status, servicePackage)

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Your booking for the %s package is now %s.\n", servicePackage, status)

	if strings.EqualFold(status, "completed") {
		link := fmt.Sprintf("%s/?rating=true&package=%s", feedbackBaseURL, url.QueryEscape(servicePackage))
		fmt.Fprintf(&b, "\nWe would love to hear how it went. Please rate your experience here:\n%s\n", link)
	}

	b.WriteString("\nWarm regards,\nNB Films Studio")
	return Message{To: to, Subject: subject, Body: b.String()}
}

// AdminNoticeMessage renders an internal notice for the studio inbox.
func AdminNoticeMessage(to, subject, body string) Message {
	return Message{To: to, Subject: subject, Body: body}
}
