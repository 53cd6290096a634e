package building

import "strings"

// Class is the closed building-type classification. Raw source tags are
// resolved to a Class once per record; everything downstream switches on
// the enum, never on tag strings.
type Class int

const (
	ClassOther Class = iota
	ClassResidential
	ClassCommercial
	ClassIndustrial
)

// String returns the class name used in logs and material lookups.
func (c Class) String() string {
	switch c {
	case ClassResidential:
		return "residential"
	case ClassCommercial:
		return "commercial"
	case ClassIndustrial:
		return "industrial"
	default:
		return "other"
	}
}

var classByTag = map[string]Class{
	"residential": ClassResidential,
	"house":       ClassResidential,
	"apartments":  ClassResidential,
	"detached":    ClassResidential,
	"terrace":     ClassResidential,
	"dormitory":   ClassResidential,
	"bungalow":    ClassResidential,

	"commercial":  ClassCommercial,
	"retail":      ClassCommercial,
	"shop":        ClassCommercial,
	"office":      ClassCommercial,
	"supermarket": ClassCommercial,
	"hotel":       ClassCommercial,
	"kiosk":       ClassCommercial,

	"industrial": ClassIndustrial,
	"warehouse":  ClassIndustrial,
	"factory":    ClassIndustrial,
	"garage":     ClassIndustrial,
	"hangar":     ClassIndustrial,
	"depot":      ClassIndustrial,
}

// Classify maps a raw building-type tag to its class. Unknown and empty
// tags resolve to ClassOther.
func Classify(tag string) Class {
	return classByTag[strings.ToLower(strings.TrimSpace(tag))]
}
