package ordertype

type Type struct {
	Name string
}

func (t Type) Code() string {
	return t.Name
}

type Enum struct {
	DineIn   Type
	Delivery Type
	Takeaway Type
}

var Types = Enum{
	DineIn:   Type{Name: "dine-in"},
	Delivery: Type{Name: "delivery"},
	Takeaway: Type{Name: "takeaway"},
}

var All = []Type{
	Types.DineIn,
	Types.Delivery,
	Types.Takeaway,
}

// ByName returns the order type for a given name, or nil if not found.
func ByName(name string) *Type {
	for _, t := range All {
		if t.Name == name {
			return &t
		}
	}
	return nil
}
