package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CashierRole gates privileged till actions such as restore and settings.
type CashierRole int

const (
	RoleCashier CashierRole = 0
	RoleAdmin   CashierRole = 1
)

func (r CashierRole) String() string {
	names := [...]string{"cashier", "admin"}
	if int(r) < 0 || int(r) >= len(names) {
		return "cashier"
	}
	return names[r]
}

// ParseCashierRole maps unknown values to RoleCashier.
func ParseCashierRole(s string) CashierRole {
	if s == "admin" {
		return RoleAdmin
	}
	return RoleCashier
}

func (r CashierRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *CashierRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = CashierRole(i)
		return nil
	}
	*r = ParseCashierRole(str)
	return nil
}

func (r CashierRole) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *CashierRole) Scan(value interface{}) error {
	if value == nil {
		*r = RoleCashier
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = CashierRole(v)
	case int:
		*r = CashierRole(v)
	}
	return nil
}
