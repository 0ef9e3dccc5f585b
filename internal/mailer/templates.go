package mailer

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*
var templateFS embed.FS

var (
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
)

// Template names.
const (
	TemplateOTP         = "otp"
	TemplateCredentials = "credentials"
)

// OTPData fills the password reset template.
type OTPData struct {
	Name       string
	Code       string
	TTLMinutes int
}

// CredentialsData fills the organizer welcome template.
type CredentialsData struct {
	Name             string
	OrganizationName string
	Email            string
	Password         string
	LoginURL         string
}

// OTPMessage renders the password reset email.
func OTPMessage(to, name string, data OTPData) (Message, error) {
	return render(TemplateOTP, to, name, "Your Children.lk password reset code", data)
}

// CredentialsMessage renders the organizer account email.
func CredentialsMessage(to, name string, data CredentialsData) (Message, error) {
	return render(TemplateCredentials, to, name, "Your Children.lk organizer account", data)
}

func render(name, to, toName, subject string, data any) (Message, error) {
	var text, html bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return Message{}, err
	}
	if err := htmlTemplates.ExecuteTemplate(&html, name+".html", data); err != nil {
		return Message{}, err
	}
	return Message{
		To:       to,
		ToName:   toName,
		Subject:  subject,
		Text:     strings.TrimSpace(text.String()),
		HTML:     html.String(),
		Template: name,
	}, nil
}
