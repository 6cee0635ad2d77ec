package export

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hard-gainer/buurtstemming/internal/config"
)

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-XYZ_0.9", "abc-XYZ_0.9"},
		{"a b", "a%20b"},
		{"!~*'()", "!~*'()"},
		{"a&b=c?d/e#f+g", "a%26b%3Dc%3Fd%2Fe%23f%2Bg"},
		{"line\nbreak", "line%0Abreak"},
		{"100%", "100%25"},
		{"🌿", "%F0%9F%8C%BF"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, EncodeURIComponent(tt.in))
		})
	}
}

func TestMailtoURIRoundTrips(t *testing.T) {
	body := "🌿 BUURTSTEMMING\nTotaal: 3 (33%)\n101, 103 & 105"
	uri := MailtoURI(MailSubject, body)

	require.True(t, strings.HasPrefix(uri, "mailto:?subject="))
	require.NotContains(t, uri, " ")
	require.NotContains(t, uri, "\n")

	query, err := url.ParseQuery(strings.TrimPrefix(uri, "mailto:?"))
	require.NoError(t, err)
	require.Equal(t, MailSubject, query.Get("subject"))
	require.Equal(t, body, query.Get("body"))
}

func TestShareURI(t *testing.T) {
	uri := ShareURI("Gras terug: 1 stemmen (50%)")
	require.Equal(t, "https://wa.me/?text=Gras%20terug%3A%201%20stemmen%20(50%25)", uri)

	links := NewLinks("x y")
	require.Equal(t, "https://wa.me/?text=x%20y", links.Share)
	require.Contains(t, links.Mailto, "&body=x%20y")
}

func TestMailerDisabled(t *testing.T) {
	var nilMailer *Mailer
	require.False(t, nilMailer.Enabled())
	require.ErrorIs(t, NewMailer(config.SMTPConfig{}).Send("s", "b"), ErrMailerDisabled)
}

func TestMailerSendsThroughOverride(t *testing.T) {
	messages := make(chan Message, 1)
	mailer := NewTestMailer(config.SMTPConfig{
		SMTPHost: "localhost",
		SMTPPort: 2525,
		SMTPFrom: "buurt@example.com",
		MailTo:   "gemeente@example.com",
	}, messages)

	require.True(t, mailer.Enabled())
	require.NoError(t, mailer.Send(MailSubject, "uitslag"))

	msg := <-messages
	require.Equal(t, Message{
		From:    "buurt@example.com",
		To:      "gemeente@example.com",
		Subject: MailSubject,
		Body:    "uitslag",
	}, msg)
}
