package health

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

func TestCheckAllHealthy(t *testing.T) {
	svc := New(&fakePinger{}, &fakePinger{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("status = %s, want %s", report.Status, Healthy)
	}
	if report.Checks["database"] != CheckOK || report.Checks["cache"] != CheckOK {
		t.Errorf("checks = %v, want both ok", report.Checks)
	}
}

func TestCheckDownedCacheIsDegraded(t *testing.T) {
	svc := New(&fakePinger{}, &fakePinger{err: errors.New("connection refused")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Fatalf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["database"] != CheckOK {
		t.Errorf("database = %s, want ok", report.Checks["database"])
	}
	if report.Checks["cache"] != CheckError {
		t.Errorf("cache = %s, want error", report.Checks["cache"])
	}
}

func TestCheckDownedDatabaseIsUnhealthy(t *testing.T) {
	svc := New(&fakePinger{err: errors.New("connection refused")}, &fakePinger{})

	report := svc.Check(context.Background())
	if report.Status != Unhealthy {
		t.Fatalf("status = %s, want %s", report.Status, Unhealthy)
	}
}

func TestCheckDownedEverythingIsUnhealthy(t *testing.T) {
	down := errors.New("connection refused")
	svc := New(&fakePinger{err: down}, &fakePinger{err: down})

	report := svc.Check(context.Background())
	if report.Status != Unhealthy {
		t.Fatalf("status = %s, want %s (storage outranks cache)", report.Status, Unhealthy)
	}
}

func TestCheckNilCacheIsSkipped(t *testing.T) {
	svc := New(&fakePinger{}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("status = %s, want %s", report.Status, Healthy)
	}
	if _, ok := report.Checks["cache"]; ok {
		t.Error("nil cache still produced a check entry")
	}
}
