// Package installers reads the installer directory and manages installation
// jobs in Airtable. Unlike the catalog client, failures here propagate to
// the caller; there is no silent fallback for directory data.
package installers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tirematch/backend/internal/models"
	"github.com/tirematch/backend/internal/utils"
)

// ErrStatusConflict is returned when a job update's expected prior status
// does not match the stored one, e.g. a replayed webhook arriving after the
// job already moved on.
var ErrStatusConflict = errors.New("job status precondition failed")

// ErrJobNotFound is returned when no job record matches the given reference.
var ErrJobNotFound = errors.New("job not found")

type Client struct {
	APIKey          string
	BaseID          string
	InstallersTable string
	JobsTable       string
	BaseURL         string
	HTTP            *http.Client
}

type airtableRecord struct {
	ID          string         `json:"id"`
	Fields      map[string]any `json:"fields"`
	CreatedTime time.Time      `json:"createdTime"`
}

type recordsEnvelope struct {
	Records []airtableRecord `json:"records"`
}

// ListActive returns all Active installers sorted by rating descending.
func (c *Client) ListActive(ctx context.Context) ([]models.InstallerRecord, error) {
	params := url.Values{}
	params.Set("filterByFormula", "{Status}='Active'")
	params.Set("sort[0][field]", "Rating")
	params.Set("sort[0][direction]", "desc")

	var env recordsEnvelope
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.InstallersTable)+"?"+params.Encode(), nil, &env); err != nil {
		return nil, err
	}

	out := make([]models.InstallerRecord, 0, len(env.Records))
	for _, rec := range env.Records {
		out = append(out, installerFromRecord(rec))
	}
	return out, nil
}

// FindNearby filters the active listing down to installers within radiusKm
// of the given point. Records without coordinates are excluded. Order stays
// rating-descending as inherited from ListActive.
func (c *Client) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.InstallerRecord, error) {
	active, err := c.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.InstallerRecord, 0, len(active))
	for _, rec := range active {
		if rec.Lat == nil || rec.Lng == nil {
			continue
		}
		d := utils.HaversineKm(lat, lng, *rec.Lat, *rec.Lng)
		if d > radiusKm {
			continue
		}
		dist := d
		rec.DistanceKm = &dist
		out = append(out, rec)
	}
	return out, nil
}

// CreateJob inserts a new installation job. Status is always forced to
// Pending and the creation timestamp is set server-side, whatever the
// caller supplied.
func (c *Client) CreateJob(ctx context.Context, job models.InstallationJob) (models.InstallationJob, error) {
	now := time.Now().UTC()
	fields := map[string]any{
		"Job Ref":        job.JobRef,
		"Installer ID":   job.InstallerID,
		"Status":         models.JobStatusPending,
		"Tire Brand":     job.TireBrand,
		"Tire Model":     job.TireModel,
		"Quantity":       job.Quantity,
		"Customer Name":  job.CustomerName,
		"Customer Email": job.CustomerEmail,
		"Created At":     now.Format(time.RFC3339),
	}
	payload := map[string]any{"fields": fields}

	var rec airtableRecord
	if err := c.do(ctx, http.MethodPost, c.tableURL(c.JobsTable), payload, &rec); err != nil {
		return models.InstallationJob{}, err
	}
	return jobFromRecord(rec), nil
}

// FindJobByRef looks a job up by its reference (see models.PendingJobRef).
func (c *Client) FindJobByRef(ctx context.Context, ref string) (models.InstallationJob, error) {
	params := url.Values{}
	params.Set("filterByFormula", fmt.Sprintf("{Job Ref}='%s'", escapeFormulaValue(ref)))
	params.Set("maxRecords", "1")

	var env recordsEnvelope
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.JobsTable)+"?"+params.Encode(), nil, &env); err != nil {
		return models.InstallationJob{}, err
	}
	if len(env.Records) == 0 {
		return models.InstallationJob{}, ErrJobNotFound
	}
	return jobFromRecord(env.Records[0]), nil
}

// UpdateJobStatus moves a job to next only when its current status equals
// expected, so a stale replay cannot overwrite a newer state. Extra fields
// are patched alongside the status.
func (c *Client) UpdateJobStatus(ctx context.Context, jobID, expected, next string, extra map[string]any) (models.InstallationJob, error) {
	var current airtableRecord
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.JobsTable)+"/"+url.PathEscape(jobID), nil, &current); err != nil {
		return models.InstallationJob{}, err
	}
	if got := getString(current.Fields, "Status"); got != expected {
		return models.InstallationJob{}, fmt.Errorf("%w: have %q, expected %q", ErrStatusConflict, got, expected)
	}

	fields := map[string]any{"Status": next}
	for k, v := range extra {
		fields[k] = v
	}
	payload := map[string]any{"fields": fields}

	var rec airtableRecord
	if err := c.do(ctx, http.MethodPatch, c.tableURL(c.JobsTable)+"/"+url.PathEscape(jobID), payload, &rec); err != nil {
		return models.InstallationJob{}, err
	}
	return jobFromRecord(rec), nil
}

func (c *Client) tableURL(table string) string {
	base := c.BaseURL
	if base == "" {
		base = "https://api.airtable.com/v0"
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), c.BaseID, url.PathEscape(table))
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any, out any) error {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}

	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("airtable http error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func escapeFormulaValue(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
