package gcode

// Category is an index into the fixed table of slicer feature categories
// announced by ";TYPE:" comments.
type Category uint8

const (
	Perimeter Category = iota
	ExternalPerimeter
	OverhangPerimeter
	InternalInfill
	SolidInfill
	TopSolidInfill
	BridgeInfill
	SkirtBrim
	Custom
	SupportMaterial
	SupportMaterialInterface
	GapFill
)

// CategoryCount is the size of the category table.
const CategoryCount = 12

var categoryLabels = [CategoryCount]string{
	Perimeter:                "Perimeter",
	ExternalPerimeter:        "External perimeter",
	OverhangPerimeter:        "Overhang perimeter",
	InternalInfill:           "Internal infill",
	SolidInfill:              "Solid infill",
	TopSolidInfill:           "Top solid infill",
	BridgeInfill:             "Bridge infill",
	SkirtBrim:                "Skirt/Brim",
	Custom:                   "Custom",
	SupportMaterial:          "Support material",
	SupportMaterialInterface: "Support material interface",
	GapFill:                  "Gap fill",
}

// String returns the label the slicer writes for the category.
func (c Category) String() string {
	if int(c) >= CategoryCount {
		return "Unknown"
	}
	return categoryLabels[c]
}

// Valid reports whether c is inside the category table.
func (c Category) Valid() bool {
	return int(c) < CategoryCount
}

// ParseCategory looks up a ";TYPE:" label. Labels match exactly.
func ParseCategory(label string) (Category, bool) {
	for i, l := range categoryLabels {
		if l == label {
			return Category(i), true
		}
	}
	return 0, false
}

// Categories returns every category in table order.
func Categories() []Category {
	all := make([]Category, CategoryCount)
	for i := range all {
		all[i] = Category(i)
	}
	return all
}
