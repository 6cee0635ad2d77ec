package export

import "strings"

// MailSubject is the subject of the mail sent to the municipality
const MailSubject = "Buurtstemming Resultaten: Struiken laten staan of gras terug?"

// ShareBaseURL is the messaging share endpoint
const ShareBaseURL = "https://wa.me/"

// Links holds the export URIs for a summary
type Links struct {
	Mailto string `json:"mailto"`
	Share  string `json:"share"`
}

// NewLinks builds both export URIs for the summary
func NewLinks(summary string) Links {
	return Links{
		Mailto: MailtoURI(MailSubject, summary),
		Share:  ShareURI(summary),
	}
}

// MailtoURI opens a mail composer with the subject and body filled in
func MailtoURI(subject, body string) string {
	return "mailto:?subject=" + EncodeURIComponent(subject) + "&body=" + EncodeURIComponent(body)
}

// ShareURI opens the messaging app with the text ready to send
func ShareURI(text string) string {
	return ShareBaseURL + "?text=" + EncodeURIComponent(text)
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent escapes every byte except A-Z a-z 0-9 and -_.!~*'()
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
