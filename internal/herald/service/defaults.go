package service

import "time"

const (
	defaultPollInterval = 10 * time.Second
	errorSleepDuration  = 5 * time.Second

	snapshotAttempts = 3
	snapshotDelay    = 500 * time.Millisecond
	snapshotMaxDelay = 3 * time.Second

	statusDelivered = "delivered"
	statusRejected  = "rejected"
	statusSkipped   = "skipped"
	statusFailed    = "failed"

	snapshotTokens = "tokens"
	snapshotPrices = "prices"
)
