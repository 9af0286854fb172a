package main

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	healthTimeout  = 5 * time.Second
	slowHealthTime = time.Second
)

var probePaths = []string{"/healthz", "/readyz", "/version"}

func healthCommand() Command {
	return command{
		name:  "health-check",
		usage: "Probe a running server's liveness, readiness and version",
		run: func(ctx context.Context, _ []string) error {
			base := apiURL()
			PrintHeader("Health check " + base)

			client := &http.Client{Timeout: healthTimeout}
			for _, path := range probePaths {
				took, err := probe(ctx, client, base+path)
				switch {
				case err != nil:
					PrintError("%s: %v", path, err)
					return err
				case took > slowHealthTime:
					PrintWarning("%s ok but slow (%v)", path, took)
				default:
					PrintSuccess("%s ok (%v)", path, took)
				}
			}
			return nil
		},
	}
}

func probe(ctx context.Context, client *http.Client, url string) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status %s", resp.Status)
	}
	return time.Since(start), nil
}
