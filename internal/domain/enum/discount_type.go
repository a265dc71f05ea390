package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DiscountType selects how a line or order discount is computed.
type DiscountType int

const (
	DiscountNone    DiscountType = 0
	DiscountPercent DiscountType = 1
	DiscountAmount  DiscountType = 2
)

func (d DiscountType) String() string {
	names := [...]string{"none", "percent", "amount"}
	if int(d) < 0 || int(d) >= len(names) {
		return "none"
	}
	return names[d]
}

// ParseDiscountType accepts "percent", "amount" or "none"/"" and rejects anything else.
func ParseDiscountType(s string) (DiscountType, error) {
	switch s {
	case "", "none":
		return DiscountNone, nil
	case "percent":
		return DiscountPercent, nil
	case "amount":
		return DiscountAmount, nil
	}
	return DiscountNone, fmt.Errorf("unknown discount type %q", s)
}

func (d DiscountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DiscountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = DiscountType(i)
		return nil
	}
	parsed, err := ParseDiscountType(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DiscountType) Value() (driver.Value, error) {
	return int64(d), nil
}

func (d *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*d = DiscountNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*d = DiscountType(v)
	case int:
		*d = DiscountType(v)
	}
	return nil
}
