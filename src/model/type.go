package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Price tolerates numbers, quoted numbers and blank strings: ByBit returns
// any of those for the same field depending on account type. Everything
// unparseable coerces to 0.00 instead of failing the whole payload.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	var strValue string
	err := json.Unmarshal(b, &strValue)
	if err == nil {
		floatValue, _ := strconv.ParseFloat(strings.TrimSpace(strValue), 64)
		*p = Price(floatValue)
		return nil
	}

	var floatValue float64
	err = json.Unmarshal(b, &floatValue)

	if err == nil {
		*p = Price(floatValue)
		return nil
	}

	if string(b) == "null" {
		*p = Price(0.00)
		return nil
	}

	return errors.New(fmt.Sprintf("Price: unsupported data type given, %s", err.Error()))
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value())
}

func (p Price) Value() float64 {
	return float64(p)
}

// Volume is the same coercion for quantity fields.
type Volume float64

func (v *Volume) UnmarshalJSON(b []byte) error {
	var strValue string
	err := json.Unmarshal(b, &strValue)
	if err == nil {
		floatValue, _ := strconv.ParseFloat(strings.TrimSpace(strValue), 64)
		*v = Volume(floatValue)
		return nil
	}

	var floatValue float64
	err = json.Unmarshal(b, &floatValue)

	if err == nil {
		*v = Volume(floatValue)
		return nil
	}

	if string(b) == "null" {
		*v = Volume(0.00)
		return nil
	}

	return errors.New(fmt.Sprintf("Volume: unsupported data type given, %s", err.Error()))
}

func (v Volume) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Value())
}

func (v Volume) Value() float64 {
	return float64(v)
}

type Percent float64

func (p Percent) Value() float64 {
	return float64(p)
}

func (p Percent) IsPositive() bool {
	return float64(p) > 0
}

func (p Percent) Gte(percent Percent) bool {
	return p.Value() >= percent.Value()
}

func (p Percent) Lte(percent Percent) bool {
	return p.Value() <= percent.Value()
}

type TimestampMilli int64

func (t *TimestampMilli) UnmarshalJSON(b []byte) error {
	var strValue string
	err := json.Unmarshal(b, &strValue)
	if err == nil {
		intValue, _ := strconv.ParseInt(strValue, 10, 64)
		*t = TimestampMilli(intValue)
		return nil
	}

	var intValue int64
	err = json.Unmarshal(b, &intValue)

	if err == nil {
		*t = TimestampMilli(intValue)
		return nil
	}

	return errors.New(fmt.Sprintf("TimestampMilli: unsupported data type given, %s", err.Error()))
}

func (t TimestampMilli) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value())
}

func (t TimestampMilli) Value() int64 {
	return int64(t)
}

func (t TimestampMilli) Gte(milli TimestampMilli) bool {
	return t.Value() >= milli.Value()
}
