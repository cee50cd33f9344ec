// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EntityType identifies which breeding entity a record, pending operation,
// or conflict refers to. The string values double as API path segments and
// as the entity_type discriminator column in both server and client stores.
type EntityType string

const (
	EntityGermplasm   EntityType = "germplasm"
	EntityTrial       EntityType = "trial"
	EntityStudy       EntityType = "study"
	EntityObservation EntityType = "observation"
	EntitySample      EntityType = "sample"
)

// ErrUnknownEntityType is returned when a string does not name one of the
// synchronized entity types.
var ErrUnknownEntityType = errors.New("unknown entity type")

// EntityTypes returns every entity type participating in synchronization,
// ordered so that referenced entities precede the entities referencing them.
// Pull application relies on this order: a downloaded observation may point
// at a germplasm or study downloaded in the same pass.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityGermplasm,
		EntityTrial,
		EntityStudy,
		EntityObservation,
		EntitySample,
	}
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityGermplasm, EntityTrial, EntityStudy, EntityObservation, EntitySample:
		return true
	}
	return false
}

// String implements [fmt.Stringer].
func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType converts s to an [EntityType], returning
// [ErrUnknownEntityType] when s does not match a known type.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
	}
	return t, nil
}

// Germplasm describes an entry in the genetic material registry.
// Field names follow the BrAPI germplasm resource so payloads can be served
// on the BrAPI surface without translation.
type Germplasm struct {
	GermplasmDbID       string         `json:"germplasmDbId,omitempty"`
	GermplasmName       string         `json:"germplasmName"`
	AccessionNumber     string         `json:"accessionNumber,omitempty"`
	CommonCropName      string         `json:"commonCropName,omitempty"`
	Genus               string         `json:"genus,omitempty"`
	Species             string         `json:"species,omitempty"`
	Pedigree            string         `json:"pedigree,omitempty"`
	SeedSource          string         `json:"seedSource,omitempty"`
	CountryOfOriginCode string         `json:"countryOfOriginCode,omitempty"`
	InstituteCode       string         `json:"instituteCode,omitempty"`
	AcquisitionDate     string         `json:"acquisitionDate,omitempty"`
	Synonyms            []string       `json:"synonyms,omitempty"`
	AdditionalInfo      map[string]any `json:"additionalInfo,omitempty"`
}

// Trial groups studies run under one breeding program.
type Trial struct {
	TrialDbID        string         `json:"trialDbId,omitempty"`
	TrialName        string         `json:"trialName"`
	TrialDescription string         `json:"trialDescription,omitempty"`
	ProgramDbID      string         `json:"programDbId,omitempty"`
	LocationDbID     string         `json:"locationDbId,omitempty"`
	StartDate        string         `json:"startDate,omitempty"`
	EndDate          string         `json:"endDate,omitempty"`
	Active           bool           `json:"active"`
	CommonCropName   string         `json:"commonCropName,omitempty"`
	AdditionalInfo   map[string]any `json:"additionalInfo,omitempty"`
}

// Study is a single experiment within a trial: one location, one season,
// one experimental design.
type Study struct {
	StudyDbID         string         `json:"studyDbId,omitempty"`
	StudyName         string         `json:"studyName"`
	StudyDescription  string         `json:"studyDescription,omitempty"`
	StudyType         string         `json:"studyType,omitempty"`
	StudyCode         string         `json:"studyCode,omitempty"`
	TrialDbID         string         `json:"trialDbId,omitempty"`
	LocationDbID      string         `json:"locationDbId,omitempty"`
	StartDate         string         `json:"startDate,omitempty"`
	EndDate           string         `json:"endDate,omitempty"`
	Active            bool           `json:"active"`
	CulturalPractices string         `json:"culturalPractices,omitempty"`
	AdditionalInfo    map[string]any `json:"additionalInfo,omitempty"`
}

// Observation is a single phenotypic measurement collected in the field,
// typically on a mobile device that may be offline at capture time.
type Observation struct {
	ObservationDbID         string         `json:"observationDbId,omitempty"`
	StudyDbID               string         `json:"studyDbId,omitempty"`
	GermplasmDbID           string         `json:"germplasmDbId,omitempty"`
	ObservationUnitDbID     string         `json:"observationUnitDbId,omitempty"`
	ObservationVariableName string         `json:"observationVariableName"`
	Value                   string         `json:"value"`
	Collector               string         `json:"collector,omitempty"`
	ObservationTimeStamp    string         `json:"observationTimeStamp,omitempty"`
	SeasonDbID              string         `json:"seasonDbId,omitempty"`
	GeoCoordinates          map[string]any `json:"geoCoordinates,omitempty"`
	AdditionalInfo          map[string]any `json:"additionalInfo,omitempty"`
}

// Sample is a physical tissue sample taken from an observation unit,
// tracked through plates and wells for genotyping.
type Sample struct {
	SampleDbID          string         `json:"sampleDbId,omitempty"`
	SampleName          string         `json:"sampleName"`
	SampleType          string         `json:"sampleType,omitempty"`
	SampleBarcode       string         `json:"sampleBarcode,omitempty"`
	GermplasmDbID       string         `json:"germplasmDbId,omitempty"`
	StudyDbID           string         `json:"studyDbId,omitempty"`
	ObservationUnitDbID string         `json:"observationUnitDbId,omitempty"`
	PlateDbID           string         `json:"plateDbId,omitempty"`
	PlateName           string         `json:"plateName,omitempty"`
	Well                string         `json:"well,omitempty"`
	TissueType          string         `json:"tissueType,omitempty"`
	Concentration       float64        `json:"concentration,omitempty"`
	Volume              float64        `json:"volume,omitempty"`
	TakenBy             string         `json:"takenBy,omitempty"`
	SampleTimestamp     string         `json:"sampleTimestamp,omitempty"`
	AdditionalInfo      map[string]any `json:"additionalInfo,omitempty"`
}

// DecodePayload unmarshals raw into the typed struct matching entityType.
// The returned value is a pointer to the concrete type (*Germplasm, *Trial,
// *Study, *Observation or *Sample).
func DecodePayload(entityType EntityType, raw json.RawMessage) (any, error) {
	var payload any
	switch entityType {
	case EntityGermplasm:
		payload = &Germplasm{}
	case EntityTrial:
		payload = &Trial{}
	case EntityStudy:
		payload = &Study{}
	case EntityObservation:
		payload = &Observation{}
	case EntitySample:
		payload = &Sample{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}

	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", entityType, err)
	}

	return payload, nil
}

// EncodePayload marshals a typed entity payload back into its canonical
// JSON form.
func EncodePayload(payload any) (json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return raw, nil
}

// PayloadName extracts the display name of a payload: the BrAPI name field
// for the registry entities, the variable name for observations. Returns an
// empty string when raw cannot be decoded; listings tolerate nameless rows.
func PayloadName(entityType EntityType, raw json.RawMessage) string {
	decoded, err := DecodePayload(entityType, raw)
	if err != nil {
		return ""
	}

	switch payload := decoded.(type) {
	case *Germplasm:
		return payload.GermplasmName
	case *Trial:
		return payload.TrialName
	case *Study:
		return payload.StudyName
	case *Observation:
		return payload.ObservationVariableName
	case *Sample:
		return payload.SampleName
	}

	return ""
}
