package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rental-server/entities"
)

type fieldKind int

const (
	textField fieldKind = iota
	amountField
	countField
)

type listingField struct {
	label string
	kind  fieldKind
}

// Prompts of the add and edit forms, in the order asked.
const (
	formTitle = iota
	formDescription
	formPrice
	formPropertyType
	formBedrooms
	formBathrooms
	formArea
	formAddress
	formCity
	formState
	formZipCode
	formFieldCount
)

var listingFields = [formFieldCount]listingField{
	formTitle:        {"Title", textField},
	formDescription:  {"Description", textField},
	formPrice:        {"Monthly price", amountField},
	formPropertyType: {"Property type (" + strings.Join(entities.PropertyTypes, ", ") + ")", textField},
	formBedrooms:     {"Bedrooms", countField},
	formBathrooms:    {"Bathrooms", countField},
	formArea:         {"Area in sq ft", amountField},
	formAddress:      {"Address", textField},
	formCity:         {"City", textField},
	formState:        {"State", textField},
	formZipCode:      {"Zip code", textField},
}

// formValues pre-fills the edit form from an existing listing.
func formValues(p entities.Property) []string {
	values := make([]string, formFieldCount)
	values[formTitle] = p.Title
	values[formDescription] = p.Description
	values[formPrice] = strconv.FormatFloat(p.Price, 'f', -1, 64)
	values[formPropertyType] = p.PropertyType
	values[formBedrooms] = strconv.Itoa(p.Bedrooms)
	values[formBathrooms] = strconv.Itoa(p.Bathrooms)
	values[formArea] = strconv.FormatFloat(p.Area, 'f', -1, 64)
	values[formAddress] = p.Location.Address
	values[formCity] = p.Location.City
	values[formState] = p.Location.State
	values[formZipCode] = p.Location.ZipCode
	return values
}

// checkFormValue validates one answer of the listing form.
func checkFormValue(kind fieldKind, v string) error {
	if v == "" {
		return errors.New("a value is required")
	}
	switch kind {
	case amountField:
		if n, err := strconv.ParseFloat(v, 64); err != nil || n < 0 {
			return fmt.Errorf("%q is not a valid amount", v)
		}
	case countField:
		if n, err := strconv.Atoi(v); err != nil || n < 0 {
			return fmt.Errorf("%q is not a whole number", v)
		}
	}
	return nil
}

// listingPayload builds the request body for checked form values.
func listingPayload(values []string) map[string]interface{} {
	amount := func(i int) float64 {
		n, _ := strconv.ParseFloat(values[i], 64)
		return n
	}
	count := func(i int) int {
		n, _ := strconv.Atoi(values[i])
		return n
	}
	return map[string]interface{}{
		"title":        values[formTitle],
		"description":  values[formDescription],
		"price":        amount(formPrice),
		"propertyType": strings.ToLower(values[formPropertyType]),
		"bedrooms":     count(formBedrooms),
		"bathrooms":    count(formBathrooms),
		"area":         amount(formArea),
		"location": map[string]string{
			"address": values[formAddress],
			"city":    values[formCity],
			"state":   values[formState],
			"zipCode": values[formZipCode],
		},
	}
}
