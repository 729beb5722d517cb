package inventory

import (
	"context"
	"unicode/utf8"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/types"
	"backoffice/pkg/logger"
)

// MaxNoteLength is the longest note, in characters, the inventory form accepts.
const MaxNoteLength = 1000

// ServiceConfig holds financial settings shared by every record.
type ServiceConfig struct {
	// DefaultTransferFeePct applies when a record carries no percentage.
	DefaultTransferFeePct types.OptionalMoney
}

// Service builds financial reports over group inventory.
type Service struct {
	repo Repository
	cfg  ServiceConfig
}

// NewService creates a new inventory financials service.
func NewService(repo Repository, cfg ServiceConfig) *Service {
	cfg.DefaultTransferFeePct = types.NormalizeMoney(cfg.DefaultTransferFeePct)
	return &Service{repo: repo, cfg: cfg}
}

// GroupFinancials returns per-record metrics and per-currency totals for a group.
func (s *Service) GroupFinancials(ctx context.Context, filter ListFilter) (*FinancialReport, error) {
	if filter.GroupID <= 0 {
		return nil, apperror.NewValidation("groupId must be a positive integer").
			WithDetail("groupId", filter.GroupID)
	}
	if filter.DepartureID != nil && *filter.DepartureID <= 0 {
		return nil, apperror.NewValidation("departureId must be a positive integer").
			WithDetail("departureId", *filter.DepartureID)
	}
	if filter.Currency != "" {
		filter.Currency = NormalizeCurrency(filter.Currency, "")
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, wrapRepoError(err)
	}

	report := &FinancialReport{Items: make([]ItemReport, 0, len(records))}
	metrics := make([]Metrics, 0, len(records))
	withMeta := 0
	for _, r := range records {
		item := s.buildItem(r)
		if item.Note.Financial != nil {
			withMeta++
		}
		report.Items = append(report.Items, item)
		metrics = append(metrics, item.Metrics)
	}
	report.Currencies = AggregateByCurrency(metrics)

	logger.Debug(ctx, "group financials computed",
		"group_id", filter.GroupID,
		"records", len(records),
		"with_financial_meta", withMeta,
		"currencies", len(report.Currencies),
	)

	return report, nil
}

// ItemFinancials returns the financial view of a single record.
func (s *Service) ItemFinancials(ctx context.Context, id int64) (*ItemReport, error) {
	if id <= 0 {
		return nil, apperror.NewValidation("id must be a positive integer").WithDetail("id", id)
	}
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	item := s.buildItem(*r)
	return &item, nil
}

// ComposeNote encodes meta into a note and checks the stored length limit.
func (s *Service) ComposeNote(ctx context.Context, text string, meta *FinancialMetadata) (string, error) {
	note := EncodeNote(text, meta)
	if n := utf8.RuneCountInString(note); n > MaxNoteLength {
		logger.Warn(ctx, "composed inventory note too long", "length", n, "max", MaxNoteLength)
		return "", apperror.NewNoteTooLong(n, MaxNoteLength)
	}
	return note, nil
}

// InspectNote decodes a raw note.
func (s *Service) InspectNote(note string) DecodedNote {
	return DecodeNote(note)
}

func (s *Service) buildItem(r Record) ItemReport {
	decoded := DecodeNote(r.NoteValue())
	return ItemReport{
		Record:  r,
		Note:    decoded,
		Metrics: ComputeItemMetrics(r, decoded.Financial, s.cfg.DefaultTransferFeePct),
	}
}

func wrapRepoError(err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err)
}
