package transaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Type tells whether a transaction adds to or takes from the user's money.
type Type int

const (
	TypeIncome  Type = 1
	TypeExpense Type = 2
)

func (t Type) String() string {
	switch t {
	case TypeIncome:
		return "income"
	case TypeExpense:
		return "expense"
	default:
		return strconv.Itoa(int(t))
	}
}

func (t Type) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalJSON accepts both the name and the bare numeric code.
func (t *Type) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s, err := jsonScalar(b)
	if err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}

// ParseType accepts "income"/"expense" in any case, or the numeric code.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "income":
		return TypeIncome, nil
	case "expense":
		return TypeExpense, nil
	}
	if n, err := strconv.Atoi(s); err == nil && Type(n).IsValid() {
		return Type(n), nil
	}
	return 0, fmt.Errorf("unknown transaction type %q", s)
}

// Category codes. Income categories occupy 1-9 and expense categories 10-19.
type Category int

const (
	CategorySalary      Category = 1
	CategoryFreelance   Category = 2
	CategoryInvestment  Category = 3
	CategoryBusiness    Category = 4
	CategoryOtherIncome Category = 5

	CategoryFood           Category = 10
	CategoryTransportation Category = 11
	CategoryHousing        Category = 12
	CategoryHealth         Category = 13
	CategoryEducation      Category = 14
	CategoryEntertainment  Category = 15
	CategoryShopping       Category = 16
	CategoryBills          Category = 17
	CategoryInsurance      Category = 18
	CategoryOtherExpense   Category = 19
)

// FallbackCategoryName is shown for codes missing from the lookup table.
const FallbackCategoryName = "Other"

type categoryInfo struct {
	key  string
	name string
	typ  Type
}

var categoryTable = map[Category]categoryInfo{
	CategorySalary:         {key: "salary", name: "Salary", typ: TypeIncome},
	CategoryFreelance:      {key: "freelance", name: "Freelance", typ: TypeIncome},
	CategoryInvestment:     {key: "investment", name: "Investments", typ: TypeIncome},
	CategoryBusiness:       {key: "business", name: "Business", typ: TypeIncome},
	CategoryOtherIncome:    {key: "other_income", name: "Other Income", typ: TypeIncome},
	CategoryFood:           {key: "food", name: "Food", typ: TypeExpense},
	CategoryTransportation: {key: "transportation", name: "Transportation", typ: TypeExpense},
	CategoryHousing:        {key: "housing", name: "Housing", typ: TypeExpense},
	CategoryHealth:         {key: "health", name: "Health", typ: TypeExpense},
	CategoryEducation:      {key: "education", name: "Education", typ: TypeExpense},
	CategoryEntertainment:  {key: "entertainment", name: "Entertainment", typ: TypeExpense},
	CategoryShopping:       {key: "shopping", name: "Shopping", typ: TypeExpense},
	CategoryBills:          {key: "bills", name: "Bills", typ: TypeExpense},
	CategoryInsurance:      {key: "insurance", name: "Insurance", typ: TypeExpense},
	CategoryOtherExpense:   {key: "other_expense", name: "Other Expenses", typ: TypeExpense},
}

var categoryByKey = func() map[string]Category {
	m := make(map[string]Category, len(categoryTable))
	for c, info := range categoryTable {
		m[info.key] = c
	}
	return m
}()

func (c Category) IsValid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Key is the stable identifier used on the wire, e.g. "food".
func (c Category) Key() string {
	if info, ok := categoryTable[c]; ok {
		return info.key
	}
	return strconv.Itoa(int(c))
}

// Name is the display name, or FallbackCategoryName for unknown codes.
func (c Category) Name() string {
	if info, ok := categoryTable[c]; ok {
		return info.name
	}
	return FallbackCategoryName
}

// Type is the transaction type the category belongs to, or 0 if unknown.
func (c Category) Type() Type {
	return categoryTable[c].typ
}

func (c Category) String() string {
	return c.Key()
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.Key()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *Category) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s, err := jsonScalar(b)
	if err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}

// ParseCategory accepts a category key ("food") or its numeric code ("10").
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := categoryByKey[s]; ok {
		return c, nil
	}
	if n, err := strconv.Atoi(s); err == nil && Category(n).IsValid() {
		return Category(n), nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Categories lists the known categories of a type in code order. A zero
// type lists all of them.
func Categories(t Type) []Category {
	var out []Category
	for c, info := range categoryTable {
		if t == 0 || info.typ == t {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// jsonScalar returns a JSON string's contents or a number's literal text.
func jsonScalar(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(b), nil
}
