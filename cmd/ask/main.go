package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vokinneberg/handwritten-math-solver/internal/types"
)

func main() {
	if len(os.Args) < 3 {
		slog.Error("Usage: ask <server-url> <question> [image-file]")
		os.Exit(1)
	}

	serverURL := strings.TrimRight(os.Args[1], "/")
	question := os.Args[2]

	// Prepare request
	reqBody := map[string]string{
		"question": question,
	}

	if len(os.Args) > 3 {
		file := os.Args[3]
		content, err := os.ReadFile(file)
		if err != nil {
			slog.Error("Failed to read image", "file", file, "error", err)
			os.Exit(1)
		}
		mime := http.DetectContentType(content)
		reqBody["image"] = "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(content)
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		slog.Error("Failed to marshal request", "error", err)
		os.Exit(1)
	}

	url := fmt.Sprintf("%s/ask", serverURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		slog.Error("Failed to create request", "error", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 3 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		slog.Error("Failed to send question", "error", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp types.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		slog.Error("Server rejected question", "status", resp.StatusCode, "message", errResp.Message)
		os.Exit(1)
	}

	var answer types.AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		slog.Error("Failed to decode answer", "error", err)
		os.Exit(1)
	}

	fmt.Println(answer.Answer)
}
