package domain

// Client is a billing counterparty. Time entries and invoices reference
// clients by ID only.
type Client struct {
	ID          int64
	Name        string
	ContactName string
	Email       string
	Phone       string
	Status      string
	Address     string
}

// IsValid checks if the client has valid data.
func (c Client) IsValid() bool {
	return c.Name != ""
}
