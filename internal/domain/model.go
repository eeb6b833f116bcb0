package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Core domain models used internally. API types are generated from OpenAPI and
// sit in internal/api; keep these decoupled.

type WasteType string

const (
	WasteMobilePhone WasteType = "mobile_phone"
	WasteBattery     WasteType = "battery"
	WastePCB         WasteType = "pcb"
	WasteTVAppliance WasteType = "tv_appliance"
	WasteComputer    WasteType = "computer"
	WasteOther       WasteType = "other"
	WasteNonEwaste   WasteType = "non_ewaste"
)

// WasteTypes lists every waste type in display order.
var WasteTypes = []WasteType{
	WasteMobilePhone,
	WasteBattery,
	WastePCB,
	WasteTVAppliance,
	WasteComputer,
	WasteOther,
	WasteNonEwaste,
}

var wasteTypeLabels = map[WasteType]string{
	WasteMobilePhone: "Mobile Phone",
	WasteBattery:     "Battery",
	WastePCB:         "Circuit Board (PCB)",
	WasteTVAppliance: "TV / Appliance",
	WasteComputer:    "Computer / Laptop",
	WasteOther:       "Other E-Waste",
	WasteNonEwaste:   "Non E-Waste",
}

func (t WasteType) Valid() bool {
	_, ok := wasteTypeLabels[t]
	return ok
}

// IsEwaste reports whether t names an actual e-waste category.
func (t WasteType) IsEwaste() bool { return t.Valid() && t != WasteNonEwaste }

func (t WasteType) Label() string {
	if l, ok := wasteTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

// ValidateCoordinates checks lat/lng ranges.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return Validation("location", fmt.Sprintf("latitude %v out of range [-90,90]", lat))
	}
	if lng < -180 || lng > 180 {
		return Validation("location", fmt.Sprintf("longitude %v out of range [-180,180]", lng))
	}
	return nil
}

// CoordinateLabel is the fallback address shown when nothing better is known.
func CoordinateLabel(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}

// ImageRef is an opaque handle to a stored photo.
type ImageRef struct {
	Ref         string
	Digest      string // sha256 hex of the bytes
	ContentType string
	Size        int
}

func DigestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

type VerificationResult struct {
	IsEwaste     bool
	Confidence   float64
	DetectedType WasteType
	Timestamp    time.Time
	ImageDigest  string // digest of the image that was classified
}

type Report struct {
	ID                 string
	Image              ImageRef
	Location           Location
	WasteType          WasteType
	Confidence         float64
	Status             ReportStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
	VerificationResult *VerificationResult
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityModerate || s == SeverityHigh
}

// Rank orders severities; higher is worse.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityModerate:
		return 1
	default:
		return 0
	}
}

type Coordinates struct {
	Lat float64
	Lng float64
}

type Hotspot struct {
	ID             string
	Center         Coordinates
	RadiusMeters   float64
	Severity       Severity
	ReportCount    int
	CleanedCount   int
	LastReportDate time.Time
	IsPredicted    bool
}

type DashboardStats struct {
	TotalReports         int
	VerifiedReports      int
	RejectedReports      int
	PendingReports       int
	CleanedLocations     int
	ActiveHotspots       int
	PredictedHotspots    int
	HighSeverityHotspots int
}

type WasteTypeCount struct {
	Type  WasteType
	Count int
}

type DayTrend struct {
	Day      string // Mon, Tue, ...
	Date     time.Time
	Reports  int
	Verified int
}

// Snapshot is what dashboards read. Everything in it is derived.
type Snapshot struct {
	Stats         DashboardStats
	Distribution  []WasteTypeCount
	WeeklyTrend   []DayTrend
	RecentReports []Report
	Hotspots      []Hotspot
	GeneratedAt   time.Time
}
