// Package whatsapp builds WhatsApp share links for bills.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareMessage holds the fields composed into a bill share message
type ShareMessage struct {
	CompanyName    string
	CustomerName   string
	BillNumber     string
	TotalAmount    float64
	CurrencySymbol string
	DueDate        string
	Status         string
}

// Render composes the plain-text message sent over WhatsApp
func (m ShareMessage) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", m.CustomerName)
	fmt.Fprintf(&b, "Here is your bill from %s:\n\n", m.CompanyName)
	fmt.Fprintf(&b, "Bill Number: %s\n", m.BillNumber)
	fmt.Fprintf(&b, "Amount Due: %s%.2f\n", m.CurrencySymbol, m.TotalAmount)
	fmt.Fprintf(&b, "Due Date: %s\n", m.DueDate)
	fmt.Fprintf(&b, "Status: %s\n\n", m.Status)
	b.WriteString("Thank you for your business!")
	return b.String()
}

// ShareLink builds a wa.me deep link with the rendered message.
// phone may be empty, in which case WhatsApp lets the sender pick a contact.
func ShareLink(phone string, message ShareMessage) string {
	text := url.QueryEscape(message.Render())
	normalized := normalizePhone(phone)
	if normalized == "" {
		return fmt.Sprintf("https://wa.me/?text=%s", text)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", normalized, text)
}

// normalizePhone strips everything except digits, dropping the leading + prefix
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
