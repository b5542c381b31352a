package types

// Address is an embedded value, never persisted on its own. The historical
// split between street-number/street-name and combined street fields is
// unified here into a single StreetAddress.
type Address struct {
	UnitNumber      string `gorm:"column:unit_number" json:"unit_number,omitempty"`
	StreetAddress   string `gorm:"column:street_address" json:"street_address,omitempty"`
	City            string `gorm:"column:city" json:"city,omitempty"`
	StateOrProvince string `gorm:"column:state_or_province" json:"state_or_province,omitempty"`
	PostalCode      string `gorm:"column:postal_code" json:"postal_code,omitempty"`
	Country         string `gorm:"column:country" json:"country,omitempty"`
}
