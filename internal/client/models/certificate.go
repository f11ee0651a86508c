package models

import "time"

// DateLayout is the YYYY-MM-DD format used for certificate dates.
const DateLayout = "2006-01-02"

type Certificate struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Issuer        string    `json:"issuer"`
	IssueDate     string    `json:"issue_date"`
	CredentialURL string    `json:"credential_url,omitempty"`
	Icon          string    `json:"icon,omitempty"`
	CreatedAt     Timestamp `json:"created_at"`
}

func (c Certificate) GetID() string { return c.ID }

type CreateCertificateRequest struct {
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issue_date"`
	CredentialURL string `json:"credential_url,omitempty"`
	Icon          string `json:"icon,omitempty"`
}

func (r CreateCertificateRequest) Validate() error {
	if err := required("title", r.Title); err != nil {
		return err
	}
	if err := required("issuer", r.Issuer); err != nil {
		return err
	}
	return ValidDate("issue_date", r.IssueDate)
}

type UpdateCertificateRequest struct {
	Title         *string `json:"title,omitempty"`
	Issuer        *string `json:"issuer,omitempty"`
	IssueDate     *string `json:"issue_date,omitempty"`
	CredentialURL *string `json:"credential_url,omitempty"`
	Icon          *string `json:"icon,omitempty"`
}

func (r UpdateCertificateRequest) Validate() error {
	if r.IssueDate != nil {
		return ValidDate("issue_date", *r.IssueDate)
	}
	return nil
}

// CertificateStats is the /api/certificates/stats read model.
type CertificateStats struct {
	TotalCertificates    int      `json:"totalCertificates"`
	UniqueIssuers        int      `json:"uniqueIssuers"`
	ThisYearCertificates int      `json:"thisYearCertificates"`
	MostRecentIssueDate  string   `json:"mostRecentIssueDate,omitempty"`
	TopIssuers           []string `json:"topIssuers"`
}

// ValidDate checks that value is a YYYY-MM-DD calendar date.
func ValidDate(field, value string) error {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return invalid(field, "%q is not a YYYY-MM-DD date", value)
	}
	return nil
}
