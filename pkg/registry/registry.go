// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"
)

//go:embed activity-registry.json
var defaultRegistry []byte

var activityIDPattern = regexp.MustCompile(`^[a-z]+\.[a-z]+\.[a-z]+$`)

// LoadRegistry reads a registry file from disk.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Default returns the registry compiled into the binary.
func Default() *ActivityRegistry {
	reg, err := Parse(defaultRegistry)
	if err != nil {
		panic(fmt.Sprintf("embedded activity registry is invalid: %v", err))
	}
	return reg
}

func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// FindByTaskType returns the activity bound to a Zeebe task type.
func (r *ActivityRegistry) FindByTaskType(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate checks ids, task types and timeouts. It returns every problem found.
func (r *ActivityRegistry) Validate() []error {
	var errs []error
	if len(r.Activities) == 0 {
		errs = append(errs, fmt.Errorf("registry contains no activities"))
	}
	ids := map[string]bool{}
	taskTypes := map[string]bool{}

	for _, a := range r.Activities {
		if !activityIDPattern.MatchString(a.ID) {
			errs = append(errs, fmt.Errorf("activity %q: id must follow domain.subdomain.action", a.ID))
		}
		if ids[a.ID] {
			errs = append(errs, fmt.Errorf("activity %q: duplicate id", a.ID))
		}
		ids[a.ID] = true

		if a.TaskType == "" {
			errs = append(errs, fmt.Errorf("activity %q: taskType is required", a.ID))
		} else if taskTypes[a.TaskType] {
			errs = append(errs, fmt.Errorf("activity %q: duplicate taskType %q", a.ID, a.TaskType))
		}
		taskTypes[a.TaskType] = true

		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				errs = append(errs, fmt.Errorf("activity %q: invalid timeout %q", a.ID, a.Timeout))
			}
		}
		if a.InputSchema != nil && a.InputSchema["type"] != "object" {
			errs = append(errs, fmt.Errorf("activity %q: inputSchema must be an object schema", a.ID))
		}
	}
	return errs
}
