package models

import (
	"time"

	"github.com/gestorapp/gestor/internal/patch"
)

type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "pix"
	PaymentCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentPix || m == PaymentCard
}

// ClientStatus is the account lifecycle state. Besides the three base
// states the funnel keeps two seller states for accounts not yet or no
// longer under management.
type ClientStatus string

const (
	StatusActive      ClientStatus = "active"
	StatusPaused      ClientStatus = "paused"
	StatusInactive    ClientStatus = "inactive"
	StatusProspecting ClientStatus = "prospecting"
	StatusClosed      ClientStatus = "closed"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusInactive, StatusProspecting, StatusClosed:
		return true
	}
	return false
}

// Client is a managed advertising account.
// SortPosition is the explicit ordinal behind manual list ordering; the
// values form a total order per owner but carry no contiguity guarantee.
type Client struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Name            string        `json:"name"`
	Specialty       *string       `json:"specialty"`
	Registry        *string       `json:"registry"`
	Location        string        `json:"location"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	MonthlyBudget   float64       `json:"monthlyBudget"`
	CampaignLink    *string       `json:"campaignLink"`
	WhatsappGroup   *string       `json:"whatsappGroup"`
	WhatsappContact *string       `json:"whatsappContact"`
	Notes           *string       `json:"notes"`
	Status          ClientStatus  `json:"status"`
	HasSecretary    bool          `json:"hasSecretary"`
	SecretaryName   *string       `json:"secretaryName"`
	SecretaryPhone  *string       `json:"secretaryPhone"`
	SocialLink      *string       `json:"socialLink"`
	SortPosition    int           `json:"sortPosition"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// ClientPatch is the tagged partial-update payload for a client. Absent
// fields are not sent; Null clears nullable columns.
type ClientPatch struct {
	Name            patch.Field[string]        `json:"name,omitzero"`
	Specialty       patch.Field[string]        `json:"specialty,omitzero"`
	Registry        patch.Field[string]        `json:"registry,omitzero"`
	Location        patch.Field[string]        `json:"location,omitzero"`
	PaymentMethod   patch.Field[PaymentMethod] `json:"paymentMethod,omitzero"`
	MonthlyBudget   patch.Field[float64]       `json:"monthlyBudget,omitzero"`
	CampaignLink    patch.Field[string]        `json:"campaignLink,omitzero"`
	WhatsappGroup   patch.Field[string]        `json:"whatsappGroup,omitzero"`
	WhatsappContact patch.Field[string]        `json:"whatsappContact,omitzero"`
	Notes           patch.Field[string]        `json:"notes,omitzero"`
	Status          patch.Field[ClientStatus]  `json:"status,omitzero"`
	HasSecretary    patch.Field[bool]          `json:"hasSecretary,omitzero"`
	SecretaryName   patch.Field[string]        `json:"secretaryName,omitzero"`
	SecretaryPhone  patch.Field[string]        `json:"secretaryPhone,omitzero"`
	SocialLink      patch.Field[string]        `json:"socialLink,omitzero"`
}
