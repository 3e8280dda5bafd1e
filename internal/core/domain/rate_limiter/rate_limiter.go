package ratelimiter

import (
	"context"
	"errors"
)

var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrParseInterval     = errors.New("invalid rate limit interval")
)

type Interval struct {
	value int
}

var (
	Minute = Interval{}
	Hour   = Interval{value: 1}
)

func (i Interval) String() string {
	if i == Hour {
		return "hour"
	}
	return "minute"
}

func ParseInterval(value string) (Interval, error) {
	switch value {
	case "minute":
		return Minute, nil
	case "hour":
		return Hour, nil
	default:
		return Minute, ErrParseInterval
	}
}

type Limit struct {
	Value    uint16
	Interval Interval
}

func NewLimit(value uint16, interval Interval) Limit {
	return Limit{Value: value, Interval: interval}
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
