package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the status of a sale
type SaleStatus int

const (
	// SaleStatusUnknown is the zero value and only appears on uninitialized records
	SaleStatusUnknown SaleStatus = 0
	SaleStatusActive  SaleStatus = 1
	// SaleStatusCancelled is terminal; a cancelled sale rejects all item mutations
	SaleStatusCancelled SaleStatus = 2
)

func (s SaleStatus) String() string {
	switch s {
	case SaleStatusActive:
		return "Active"
	case SaleStatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Active":
		*s = SaleStatusActive
	case "Cancelled":
		*s = SaleStatusCancelled
	default:
		*s = SaleStatusUnknown
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusUnknown
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
