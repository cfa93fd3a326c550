package domain

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	orders "github.com/Apurer/pizzeria-console/internal/domains/orders/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const noComment = "не указан"

// Renderer turns orders into email messages. Rendering is a pure function
// of the order, the optional reason and the branding.
type Renderer struct {
	brand Branding
	text  *texttemplate.Template
	html  *htmltemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer(brand Branding) (*Renderer, error) {
	text, err := texttemplate.ParseFS(templateFS, "templates/message.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}
	html, err := htmltemplate.ParseFS(templateFS, "templates/message.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	return &Renderer{brand: brand.Merge(DefaultBranding()), text: text, html: html}, nil
}

type view struct {
	Name        string
	Lead        string
	Details     bool
	Items       string
	Sum         string
	ReadyBy     string
	Comment     string
	ShowComment bool
	Note        string
	Thanks      bool
	Brand       Branding
}

func (r *Renderer) detailed(order *orders.Order, lead string) view {
	comment := strings.TrimSpace(order.AdditionalInfo)
	v := view{
		Name:        order.ConsumerName,
		Lead:        lead,
		Details:     true,
		Items:       strings.Join(order.Items, ", "),
		Sum:         order.Sum.String(),
		ReadyBy:     orders.FormatTime(order.Time),
		Comment:     comment,
		ShowComment: comment != "",
		Thanks:      true,
		Brand:       r.brand,
	}
	if comment == "" {
		v.Comment = noComment
	}
	return v
}

// Receipt is sent when an order has been received but not yet reviewed.
func (r *Renderer) Receipt(order *orders.Order) (Message, error) {
	v := r.detailed(order, "Мы получили ваш заказ:")
	v.Note = "Через некоторое время мы подтвердим сможем ли мы выполнить ваш заказ, и отправим уведомление на вашу почту."
	return r.render(order, SubjectReceipt, v)
}

// Confirmation is sent when the shop accepts an order.
func (r *Renderer) Confirmation(order *orders.Order) (Message, error) {
	return r.render(order, SubjectConfirmation, r.detailed(order, "Мы подтверждаем, что выполним ваш заказ:"))
}

// Rejection is sent when the shop declines an order. A blank reason is
// left out of the message.
func (r *Renderer) Rejection(order *orders.Order, reason string) (Message, error) {
	lead := "К сожалению, мы не сможем выполнить ваш заказ."
	if reason = strings.TrimSpace(reason); reason != "" {
		lead = "К сожалению, мы не сможем выполнить ваш заказ, по причине: " + reason + "."
	}
	return r.render(order, SubjectRejection, view{Name: order.ConsumerName, Lead: lead, Brand: r.brand})
}

func (r *Renderer) render(order *orders.Order, subject string, v view) (Message, error) {
	var text, html bytes.Buffer
	if err := r.text.Execute(&text, v); err != nil {
		return Message{}, fmt.Errorf("render text: %w", err)
	}
	if err := r.html.Execute(&html, v); err != nil {
		return Message{}, fmt.Errorf("render html: %w", err)
	}
	return Message{
		To:      []string{strings.TrimSpace(order.ConsumerEmail)},
		Subject: subject,
		Text:    strings.TrimSpace(text.String()),
		HTML:    html.String(),
	}, nil
}
