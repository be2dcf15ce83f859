package upstream

import "time"

// RetryPolicy controls caller-side retries of a failed prediction.
type RetryPolicy struct {
	MaxRetries  int           // attempts after the first one
	BaseBackoff time.Duration // first delay
	MaxBackoff  time.Duration // upper bound on any delay
	JitterFn    func(time.Duration) time.Duration
}

// HealthPolicy defines when the service flips between healthy and unhealthy.
type HealthPolicy struct {
	FailureThreshold int // consecutive failed checks to mark unhealthy
	SuccessThreshold int // consecutive good checks to mark healthy again
}

type MonitorConfig struct {
	Interval     time.Duration
	CheckTimeout time.Duration
	Health       HealthPolicy
}

func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Interval:     30 * time.Second,
		CheckTimeout: 5 * time.Second,
		Health: HealthPolicy{
			FailureThreshold: 3,
			SuccessThreshold: 2,
		},
	}
}

// NoRetry is the default: a failure is surfaced on the first attempt.
func NoRetry() RetryPolicy {
	return RetryPolicy{}
}

func DefaultRetryPolicy(maxRetries int) RetryPolicy {
	return RetryPolicy{
		MaxRetries:  maxRetries,
		BaseBackoff: 250 * time.Millisecond,
		MaxBackoff:  4 * time.Second,
		JitterFn:    func(d time.Duration) time.Duration { return d / 2 },
	}
}
