package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dormhub_app_echo/internal/models"
)

const reportsCollection = "financial_reports"

// reportContentType is what stored report documents are served as
const reportContentType = "application/pdf"

// ReportStore persists and fetches finance reports. Reports are
// append-only historical records: no update or delete is exposed, and
// two generations from identical input produce two independent records.
type ReportStore struct {
	fs *firestore.Client
}

func NewReportStore(fs *firestore.Client) *ReportStore {
	return &ReportStore{fs: fs}
}

func docToReport(doc *firestore.DocumentSnapshot) (models.FinanceReport, error) {
	var r models.FinanceReport
	if err := doc.DataTo(&r); err != nil {
		return models.FinanceReport{}, fmt.Errorf("decode report %s: %w: %w", doc.Ref.ID, ErrStoreUnavailable, err)
	}
	r.ID = doc.Ref.ID
	return r, nil
}

// CreateSnapshot archives the given profile snapshot as a new report and
// returns its identifier. The snapshot is taken as supplied; it is not
// recomputed here, so the caller controls exactly what gets archived.
func (s *ReportStore) CreateSnapshot(ctx context.Context, snapshot models.StudentFinanceProfile) (string, error) {
	if snapshot.UserID == "" {
		return "", fmt.Errorf("snapshot userId is required: %w", ErrValidation)
	}

	content, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("serialize snapshot for %s: %w: %w", snapshot.UserID, ErrValidation, err)
	}
	return s.create(ctx, snapshot.UserID, snapshot.TenantCode, string(content))
}

// CreateDocument archives a rendered document (e.g. a PDF) as a new
// report. The payload is stored base64-encoded and decodes back
// byte-for-byte on download.
func (s *ReportStore) CreateDocument(ctx context.Context, userID, tenantCode string, payload []byte) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("userId is required: %w", ErrValidation)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("document payload is empty: %w", ErrValidation)
	}
	return s.create(ctx, userID, tenantCode, models.EncodePayload(payload))
}

func (s *ReportStore) create(ctx context.Context, userID, tenantCode, reportData string) (string, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	now := time.Now()
	ref, _, err := s.fs.Collection(reportsCollection).Add(ctx, models.FinanceReport{
		UserID:     userID,
		TenantCode: tenantCode,
		ReportDate: now,
		ReportData: reportData,
		CreatedAt:  now,
	})
	if err != nil {
		return "", fmt.Errorf("create report for %s: %w: %w", userID, ErrStoreUnavailable, err)
	}
	return ref.ID, nil
}

// Get fetches a single report by identifier
func (s *ReportStore) Get(ctx context.Context, reportID string) (models.FinanceReport, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	doc, err := s.fs.Collection(reportsCollection).Doc(reportID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.FinanceReport{}, fmt.Errorf("report %s: %w", reportID, ErrNotFound)
		}
		return models.FinanceReport{}, fmt.Errorf("get report %s: %w: %w", reportID, ErrStoreUnavailable, err)
	}
	return docToReport(doc)
}

// ForStudent lists a student's reports, newest report date first. A
// student with no reports gets an empty slice, not an error.
func (s *ReportStore) ForStudent(ctx context.Context, userID string) ([]models.FinanceReport, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	iter := s.fs.Collection(reportsCollection).
		Where("userId", "==", userID).
		OrderBy("reportDate", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	reports := []models.FinanceReport{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list reports for %s: %w: %w", userID, ErrStoreUnavailable, err)
		}
		r, err := docToReport(doc)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// DownloadPayload fetches a report's stored document and returns the raw
// bytes with a suggested filename and content type. A report without a
// stored payload is NotFound, never an empty-body success.
func (s *ReportStore) DownloadPayload(ctx context.Context, reportID string) ([]byte, string, string, error) {
	report, err := s.Get(ctx, reportID)
	if err != nil {
		return nil, "", "", err
	}
	if report.ReportData == "" {
		return nil, "", "", fmt.Errorf("report %s payload: %w", reportID, ErrNotFound)
	}
	raw, err := report.Payload()
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return raw, report.Filename(), reportContentType, nil
}
