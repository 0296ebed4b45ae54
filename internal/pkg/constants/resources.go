package constants

import "strings"

// DayOfWeek is a weekly availability day.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDayOfWeek upper-cases s before matching against DaysOfWeek.
func ParseDayOfWeek(s string) (DayOfWeek, bool) {
	d := DayOfWeek(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range DaysOfWeek {
		if v == d {
			return d, true
		}
	}
	return "", false
}

// ResourceCategory classifies a bookable resource.
type ResourceCategory string

const (
	CategoryRoom      ResourceCategory = "ROOM"
	CategoryEquipment ResourceCategory = "EQUIPMENT"
	CategoryVehicle   ResourceCategory = "VEHICLE"
	CategoryService   ResourceCategory = "SERVICE"
	CategoryOther     ResourceCategory = "OTHER"
)

var ResourceCategories = []ResourceCategory{CategoryRoom, CategoryEquipment, CategoryVehicle, CategoryService, CategoryOther}

// ParseResourceCategory upper-cases s before matching against ResourceCategories.
func ParseResourceCategory(s string) (ResourceCategory, bool) {
	c := ResourceCategory(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range ResourceCategories {
		if v == c {
			return c, true
		}
	}
	return "", false
}
