package repository

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

// bucketRow はqueryBucketsの1行。LEFT JOINのためバケット列はNULLになり得る。
type bucketRow struct {
	ServiceID              string
	Rule                   *string
	Priority               *int64
	InitialBalance         *int64
	CurrentBalance         *int64
	Usage                  *int64
	ExpiryDate             *time.Time
	ServiceStartDate       *time.Time
	PlanID                 *string
	BucketID               *string
	Status                 *string
	BucketUser             string
	ConsumptionLimit       *int64
	SessionTimeout         *int64
	TimeWindow             *string
	ConsumptionLimitWindow *int64
}

// scanBucket は1行を読み取りBucketに変換する。バケットが紐付かない行はfalseを返す。
func scanBucket(rows pgx.Rows) (model.Bucket, bool, error) {
	var r bucketRow
	err := rows.Scan(
		&r.ServiceID,
		&r.Rule,
		&r.Priority,
		&r.InitialBalance,
		&r.CurrentBalance,
		&r.Usage,
		&r.ExpiryDate,
		&r.ServiceStartDate,
		&r.PlanID,
		&r.BucketID,
		&r.Status,
		&r.BucketUser,
		&r.ConsumptionLimit,
		&r.SessionTimeout,
		&r.TimeWindow,
		&r.ConsumptionLimitWindow,
	)
	if err != nil {
		return model.Bucket{}, false, err
	}
	if r.BucketID == nil {
		return model.Bucket{}, false, nil
	}
	return r.toBucket(), true, nil
}

func (r *bucketRow) toBucket() model.Bucket {
	b := model.Bucket{
		BucketID:               *r.BucketID,
		ServiceID:              r.ServiceID,
		Rule:                   deref(r.Rule),
		Priority:               deref(r.Priority),
		InitialBalance:         deref(r.InitialBalance),
		CurrentBalance:         deref(r.CurrentBalance),
		Usage:                  deref(r.Usage),
		Status:                 deref(r.Status),
		ExpiryDate:             r.ExpiryDate,
		PlanID:                 deref(r.PlanID),
		TimeWindow:             deref(r.TimeWindow),
		ConsumptionLimit:       r.ConsumptionLimit,
		ConsumptionLimitWindow: r.ConsumptionLimitWindow,
		BucketUser:             r.BucketUser,
		SessionTimeout:         r.SessionTimeout,
	}
	if r.ServiceStartDate != nil {
		b.ServiceStartDate = *r.ServiceStartDate
	}
	return b
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
