package models

import (
	"errors"
	"time"

	"github.com/pacebudget/backend/internal/forecast"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Period is the document of a budgeting period.
//
// StartDay, PeriodStart and PeriodEnd are frozen when the document is
// created. Documents created before bounds were frozen have them unset.
type Period struct {
	Timestamps
	Month        types.Month       `gorm:"primaryKey"`
	Income       decimal.Decimal   `gorm:"type:DECIMAL(20,8)"`
	PercentSplit PercentSplit      `gorm:"embedded;embeddedPrefix:percent_"`
	StartDay     *int
	PeriodStart  *time.Time
	PeriodEnd    *time.Time        // Exclusive
	Summary      *forecast.Summary `gorm:"serializer:json;type:text"` // Snapshot written after every change
}

func (Period) Self() string {
	return "Period"
}

// AfterFind sets all times to UTC.
func (p *Period) AfterFind(tx *gorm.DB) (err error) {
	_ = p.Timestamps.AfterFind(tx)

	if p.PeriodStart != nil {
		t := p.PeriodStart.In(time.UTC)
		p.PeriodStart = &t
	}

	if p.PeriodEnd != nil {
		t := p.PeriodEnd.In(time.UTC)
		p.PeriodEnd = &t
	}

	return nil
}

// BeforeSave validates the document.
func (p *Period) BeforeSave(_ *gorm.DB) error {
	if p.Income.IsNegative() {
		return ErrAmountNegative
	}

	if p.StartDay != nil && (*p.StartDay < period.MinStartDay || *p.StartDay > period.MaxStartDay) {
		return ErrStartDayOutOfRange
	}

	return p.PercentSplit.Validate()
}

// Freeze stores the bounds the period has with startDay.
func (p *Period) Freeze(startDay int) {
	r := period.RangeOf(p.Month, startDay)
	start := r.Start.Time()
	end := r.End.Time()

	p.StartDay = &startDay
	p.PeriodStart = &start
	p.PeriodEnd = &end
}

// Frozen reports if the bounds of the period are stored with the document.
func (p Period) Frozen() bool {
	return p.StartDay != nil && p.PeriodStart != nil && p.PeriodEnd != nil
}

// Source returns how the bounds of the period are determined. Legacy
// documents use the start day of the current settings.
func (p Period) Source(settings Settings) period.Source {
	if !p.Frozen() {
		return period.Recomputed{StartDay: settings.StartDay}
	}

	return period.Frozen{
		StartDay: *p.StartDay,
		Start:    types.DayOf(*p.PeriodStart),
		End:      types.DayOf(*p.PeriodEnd),
	}
}

// Allocations returns the allocations per category.
func (p Period) Allocations() types.CategoryAmounts {
	return p.PercentSplit.Allocate(p.Income)
}

// GetOrCreatePeriod returns the document for month. If it does not exist,
// it is created with zero income, the percent split of the settings and
// bounds frozen with the start day of the settings.
func GetOrCreatePeriod(month types.Month, settings Settings) (Period, error) {
	var p Period
	err := DB.First(&p, "month = ?", month).Error
	if err == nil {
		return p, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Period{}, err
	}

	p = Period{
		Month:        month,
		Income:       decimal.Zero,
		PercentSplit: settings.PercentSplit,
	}
	p.Freeze(settings.StartDay)

	err = DB.Create(&p).Error
	if err != nil {
		return Period{}, err
	}

	return p, nil
}

// FindPeriod returns the document for month, if it exists.
func FindPeriod(month types.Month) (Period, error) {
	var p Period
	err := DB.First(&p, "month = ?", month).Error
	return p, err
}

// WriteSummary overwrites the summary snapshot of the period.
func WriteSummary(month types.Month, s forecast.Summary) error {
	return DB.Model(&Period{}).Where("month = ?", month).Select("Summary").Updates(Period{Summary: &s}).Error
}

// PeriodsContaining returns the documents with frozen bounds that contain
// the day.
func PeriodsContaining(d types.Day) ([]Period, error) {
	var periods []Period
	err := DB.
		Where("period_start IS NOT NULL AND period_end IS NOT NULL").
		Where("date(period_start) <= date(?) AND date(?) < date(period_end)", d.Time(), d.Time()).
		Order("month").
		Find(&periods).Error

	return periods, err
}
