package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod represents how a settled order was tendered
type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodBoth PaymentMethod = "both"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether m is one of the known methods
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodUPI, PaymentMethodCash, PaymentMethodBoth:
		return true
	}
	return false
}

// NeedsUPI reports whether a UPI amount must be declared for this method
func (m PaymentMethod) NeedsUPI() bool {
	return m == PaymentMethodUPI || m == PaymentMethodBoth
}

// NeedsCash reports whether a cash amount must be declared for this method
func (m PaymentMethod) NeedsCash() bool {
	return m == PaymentMethodCash || m == PaymentMethodBoth
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = ""
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(v)
	default:
		return fmt.Errorf("enum: cannot scan %T into PaymentMethod", value)
	}
	return nil
}
