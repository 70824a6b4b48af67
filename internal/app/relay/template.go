package relay

import (
	"bytes"
	"embed"
	"fmt"
	htmlTemplate "html/template"
	"io"
	"text/template"

	"github.com/fivedtech/mail-relay/internal/domain"
)

//go:embed tpl_files/*
var TemplateFiles embed.FS

// TemplateHandler is a struct that holds the html and text templates.
type TemplateHandler struct {
	htmlTemplates *htmlTemplate.Template
	textTemplates *template.Template
}

func newTemplateHandler() (*TemplateHandler, error) {
	htmlTemplateCache, err := htmlTemplate.New("Html").ParseFS(TemplateFiles, "tpl_files/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html template files: %w", err)
	}

	txtTemplateCache, err := template.New("Txt").ParseFS(TemplateFiles, "tpl_files/*.gotpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template files: %w", err)
	}

	handler := &TemplateHandler{
		htmlTemplates: htmlTemplateCache,
		textTemplates: txtTemplateCache,
	}

	return handler, nil
}

// GetContactMail returns the text and html body for a contact submission.
// All values in the html body are escaped by html/template.
func (c TemplateHandler) GetContactMail(submission domain.ContactSubmission) (io.Reader, io.Reader, error) {
	var tplBuff bytes.Buffer
	var htmlTplBuff bytes.Buffer

	err := c.textTemplates.ExecuteTemplate(&tplBuff, "contact.gotpl", submission)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute template contact.gotpl: %w", err)
	}

	err = c.htmlTemplates.ExecuteTemplate(&htmlTplBuff, "contact.gohtml", submission)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute template contact.gohtml: %w", err)
	}

	return &tplBuff, &htmlTplBuff, nil
}
