package installers

import (
	"encoding/json"
	"time"

	"github.com/tirematch/backend/internal/models"
)

func installerFromRecord(rec airtableRecord) models.InstallerRecord {
	out := models.InstallerRecord{
		ID:                rec.ID,
		Name:              getString(rec.Fields, "Name"),
		Address:           getString(rec.Fields, "Address"),
		PricePerTire:      getFloat(rec.Fields, "Price Per Tire"),
		ServiceRadiusKm:   getFloat(rec.Fields, "Service Radius"),
		Status:            getString(rec.Fields, "Status"),
		Rating:            getFloat(rec.Fields, "Rating"),
		CompletedInstalls: getInt(rec.Fields, "Completed Installs"),
	}
	if lat, ok := lookupFloat(rec.Fields, "Latitude"); ok {
		out.Lat = &lat
	}
	if lng, ok := lookupFloat(rec.Fields, "Longitude"); ok {
		out.Lng = &lng
	}
	return out
}

func jobFromRecord(rec airtableRecord) models.InstallationJob {
	job := models.InstallationJob{
		ID:            rec.ID,
		JobRef:        getString(rec.Fields, "Job Ref"),
		InstallerID:   getString(rec.Fields, "Installer ID"),
		Status:        getString(rec.Fields, "Status"),
		CustomerName:  getString(rec.Fields, "Customer Name"),
		CustomerEmail: getString(rec.Fields, "Customer Email"),
		CustomerPhone: getString(rec.Fields, "Customer Phone"),
		TireBrand:     getString(rec.Fields, "Tire Brand"),
		TireModel:     getString(rec.Fields, "Tire Model"),
		Quantity:      getInt(rec.Fields, "Quantity"),
		OrderID:       getString(rec.Fields, "Order ID"),
		OrderNumber:   getString(rec.Fields, "Order Number"),
		Notes:         getString(rec.Fields, "Notes"),
		CreatedAt:     rec.CreatedTime,
	}
	if raw := getString(rec.Fields, "Created At"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			job.CreatedAt = ts
		}
	}
	return job
}

func getString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func getInt(m map[string]any, key string) int {
	return int(getFloat(m, key))
}

func getFloat(m map[string]any, key string) float64 {
	f, _ := lookupFloat(m, key)
	return f
}

func lookupFloat(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
