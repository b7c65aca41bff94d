package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringArray stores a list of strings (profile subjects, availability
// slots) in a plain text column as JSON, so the same model works on
// postgres, mysql and sqlite without dialect-specific array types.
type StringArray []string

// Scan implements the sql.Scanner interface for reading from the database.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return a.scanBytes(v)
	case string:
		return a.scanBytes([]byte(v))
	default:
		return errors.New("StringArray: unsupported scan type")
	}
}

func (a *StringArray) scanBytes(data []byte) error {
	if len(data) == 0 {
		*a = nil
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, a)
	}

	// Rows written outside Value, a single bare item.
	*a = []string{string(data)}
	return nil
}

// Value implements the driver.Valuer interface for writing to the database.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GormDataType returns the GORM data type hint.
func (StringArray) GormDataType() string {
	return "text"
}
