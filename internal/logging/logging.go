// Package logging routes the standard logger to the console and an append-only log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init points the standard logger at stdout and, when logPath is set, at logPath too.
// Pass console=false for full-screen programs that must not write to the terminal.
func Init(logPath string, console bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stdout)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogError logs err with a short context prefix. Nil errors are ignored.
func LogError(context string, err error) {
	if err == nil {
		return
	}
	log.Printf("[ERROR] %s: %v", strings.TrimSpace(context), err)
}

// LogRequest logs an outbound request or inbound response exchanged with the evaluation API.
func LogRequest(direction, method, url, requestID string, payload any) {
	log.Println(buildRequestMessage(direction, method, url, requestID, payload))
}

// LogResponse logs the status and latency of a completed API call.
func LogResponse(method, url, requestID string, status int, elapsed time.Duration) {
	log.Println(buildRequestMessage("in", method, url, requestID, fmt.Sprintf("status=%d elapsed=%s", status, elapsed.Round(time.Millisecond))))
}

func buildRequestMessage(direction, method, url, requestID string, payload any) string {
	dir := strings.TrimSpace(direction)
	if dir != "" {
		dir = strings.ToUpper(dir)
	}
	methodValue := strings.ToUpper(strings.TrimSpace(method))
	if methodValue == "" {
		methodValue = "GET"
	}
	urlValue := strings.TrimSpace(url)
	if urlValue == "" {
		urlValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", dir)}
	parts = append(parts, fmt.Sprintf("%s %s", methodValue, urlValue))
	if requestID = strings.TrimSpace(requestID); requestID != "" {
		parts = append(parts, fmt.Sprintf("request_id=%s", requestID))
	}
	if payload != nil {
		parts = append(parts, fmt.Sprintf("payload=%s", formatPayload(payload)))
	}
	return strings.Join(parts, " ")
}

// maxPayloadBytes caps logged payloads; result listings can run to megabytes.
const maxPayloadBytes = 512

func formatPayload(payload any) string {
	var text string
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		text = v
	case []byte:
		text = string(v)
	case fmt.Stringer:
		text = v.String()
	case error:
		text = v.Error()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			text = fmt.Sprintf("%v", v)
		} else {
			text = string(data)
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return `""`
	}
	if len(text) > maxPayloadBytes {
		cut := maxPayloadBytes
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		return fmt.Sprintf("%s...(%d bytes)", text[:cut], len(text))
	}
	return text
}
