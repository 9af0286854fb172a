package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

func watchCommand() Command {
	return command{
		name:  "watch",
		usage: "Stream a wheel's live events <code> (needs API_KEY)",
		run:   runWatch,
	}
}

func runWatch(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("wheel code required")
	}
	url := fmt.Sprintf("%s/api/v1/host/wheels/%s/events", apiURL(), args[0])
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if apiKey := os.Getenv("API_KEY"); apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	PrintSuccess("Watching %s, Ctrl+C to stop", strings.ToUpper(args[0]))
	err = printEvents(resp.Body)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// printEvents prints one line per SSE event until the stream ends.
func printEvents(r io.Reader) error {
	var eventType string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			PrintInfo("%s %s", eventType, strings.TrimPrefix(line, "data: "))
		case line == "":
			eventType = ""
		}
	}
	return scanner.Err()
}
