package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// taskID is embedded in every input type.
type taskID struct {
	TaskID string `json:"task_id,omitempty"`
}

// envelope is the output of one task: its id and either a result or an
// error message.
type envelope struct {
	TaskID string `json:"task_id,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// runBatch decodes every task of the input into In, runs process on it and
// writes the envelopes. Tasks without a task_id get a random one. A task
// that fails to decode or process is reported in its envelope and does not
// stop the rest.
func runBatch[In any](a *app, command string, process func(In) (any, error)) error {
	raw, err := a.readInput()
	if errors.Is(err, errNoInput) {
		return err
	}
	if err != nil {
		return a.fail(fmt.Sprintf("read input: %v", err))
	}
	items, isArray, err := splitInputs(raw)
	if err != nil {
		return a.fail(fmt.Sprintf("parse JSON: %v", err))
	}

	failed := 0
	outputs := make([]envelope, 0, len(items))
	for _, item := range items {
		var id taskID
		_ = json.Unmarshal(item, &id) // malformed items are reported by decodeTask
		if id.TaskID == "" {
			id.TaskID = uuid.NewString()
		}

		out := envelope{TaskID: id.TaskID}
		res, err := decodeTask(item, process)
		if err != nil {
			failed++
			out.Error = err.Error()
			a.log.Debug("task failed", "command", command, "task_id", id.TaskID, "error", err)
		} else {
			out.Result = res
		}
		outputs = append(outputs, out)
	}

	if isArray {
		a.writeJSON(outputs)
	} else {
		a.writeJSON(outputs[0])
	}
	if failed > 0 {
		a.log.Debug("batch finished with failures", "command", command, "tasks", len(items), "failed", failed)
		return errFailed
	}
	return nil
}

func decodeTask[In any](item json.RawMessage, process func(In) (any, error)) (any, error) {
	var in In
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	return process(in)
}

// splitInputs accepts a single JSON object or a non-empty array of them.
func splitInputs(raw []byte) ([]json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, true, err
		}
		if len(items) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return items, true, nil
	}
	if !json.Valid(trimmed) {
		return nil, false, fmt.Errorf("invalid JSON object")
	}
	return []json.RawMessage{trimmed}, false, nil
}
