// Package catalog holds the static price reference data and the closed
// option sets (material, door, motor, location, ...) a quote is built from.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownOption is returned when a tag is not part of an option set.
var ErrUnknownOption = errors.New("unknown option")

// Material is an insulation panel material.
type Material string

const (
	MaterialEPS Material = "EPS" // Expanded polystyrene
	MaterialPUR Material = "PUR" // Polyurethane
)

// DoorType is a cold-room door mechanism.
type DoorType string

const (
	DoorBatiente  DoorType = "batiente"  // Hinged
	DoorVaiven    DoorType = "vaiven"    // Swing (double action)
	DoorCorredera DoorType = "corredera" // Sliding
)

// InstallMode tells whether the customer picks the cabin up or has it installed.
type InstallMode string

const (
	InstallPickup InstallMode = "recoger"
	InstallOnSite InstallMode = "instalar"
)

// Location is the installation location tier.
type Location string

const (
	LocationLima  Location = "lima"
	LocationOther Location = "otro"
)

// MotorRating is the refrigeration unit power rating.
type MotorRating string

const (
	Motor2HP     MotorRating = "2"
	Motor2_5HP   MotorRating = "2.5"
	Motor3HP     MotorRating = "3"
	MotorOtherHP MotorRating = "otro"
)

// EPSThickness is the wall panel thickness tier, in millimeters.
type EPSThickness string

const (
	EPSThickness100 EPSThickness = "100"
	EPSThickness200 EPSThickness = "200"
)

// PURThickness is the PUR panel thickness tier, in millimeters.
type PURThickness string

const (
	PURThickness100 PURThickness = "100"
	PURThickness150 PURThickness = "150"
)

func unknown(kind, tag string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownOption, kind, tag)
}

func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u").Replace(tag)
}

// ParseMaterial parses a material tag ("eps", "PUR", ...).
func ParseMaterial(tag string) (Material, error) {
	switch m := Material(strings.ToUpper(strings.TrimSpace(tag))); m {
	case MaterialEPS, MaterialPUR:
		return m, nil
	}
	return "", unknown("material", tag)
}

// ParseDoorType parses a door tag. The doors page spelling "corrediza"
// is accepted for the sliding door.
func ParseDoorType(tag string) (DoorType, error) {
	switch n := normalize(tag); n {
	case "batiente":
		return DoorBatiente, nil
	case "vaiven":
		return DoorVaiven, nil
	case "corredera", "corrediza":
		return DoorCorredera, nil
	}
	return "", unknown("door type", tag)
}

// ParseInstallMode parses "recoger" (pickup) or "instalar" (install).
func ParseInstallMode(tag string) (InstallMode, error) {
	switch n := normalize(tag); n {
	case "recoger", "pickup":
		return InstallPickup, nil
	case "instalar", "install":
		return InstallOnSite, nil
	}
	return "", unknown("installation mode", tag)
}

// ParseLocation parses a location tier.
func ParseLocation(tag string) (Location, error) {
	switch n := normalize(tag); n {
	case "lima":
		return LocationLima, nil
	case "otro", "other", "fuera de lima":
		return LocationOther, nil
	}
	return "", unknown("location", tag)
}

// ParseMotorRating parses "2", "2.5", "3 HP", "2.0hp" or "otro".
func ParseMotorRating(tag string) (MotorRating, error) {
	n := strings.TrimSpace(strings.TrimSuffix(normalize(tag), "hp"))
	if n == "otro" || n == "other" {
		return MotorOtherHP, nil
	}
	hp, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return "", unknown("motor rating", tag)
	}
	switch r := MotorRating(strconv.FormatFloat(hp, 'f', -1, 64)); r {
	case Motor2HP, Motor2_5HP, Motor3HP:
		return r, nil
	}
	return "", unknown("motor rating", tag)
}

// ParseEPSThickness parses "100" or "200" (an "mm" suffix is tolerated).
func ParseEPSThickness(tag string) (EPSThickness, error) {
	switch t := EPSThickness(strings.TrimSuffix(normalize(tag), "mm")); t {
	case EPSThickness100, EPSThickness200:
		return t, nil
	}
	return "", unknown("EPS thickness", tag)
}

// ParsePURThickness parses "100" or "150" (an "mm" suffix is tolerated).
func ParsePURThickness(tag string) (PURThickness, error) {
	switch t := PURThickness(strings.TrimSuffix(normalize(tag), "mm")); t {
	case PURThickness100, PURThickness150:
		return t, nil
	}
	return "", unknown("PUR thickness", tag)
}
