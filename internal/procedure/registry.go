package procedure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/metrics"
)

// Defaulter is implemented by inputs with optional fields
type Defaulter interface {
	ApplyDefaults()
}

type invoker func(ctx context.Context, raw json.RawMessage) (interface{}, error)

// Registry maps procedure names to handlers. Registration happens at startup only.
type Registry struct {
	procedures map[string]invoker
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		procedures: make(map[string]invoker),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger,
	}
}

// Register adds h under name. Input is decoded from JSON, defaulted and
// validated before h runs; failures are BAD_REQUEST.
func Register[In any, Out any](r *Registry, name string, h Handler[In, Out]) {
	if _, exists := r.procedures[name]; exists {
		panic(fmt.Sprintf("procedure %q registered twice", name))
	}

	r.procedures[name] = func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var in In
		if err := decodeInput(raw, &in); err != nil {
			return nil, apierror.BadRequest("invalid input: %v", err)
		}

		applyDefaults(&in)

		if err := r.validateInput(in); err != nil {
			return nil, err
		}

		return h(ctx, in)
	}
}

// Invoke runs the named procedure with raw JSON input
func (r *Registry) Invoke(ctx context.Context, name string, raw json.RawMessage) (interface{}, error) {
	proc, ok := r.procedures[name]
	if !ok {
		metrics.RecordProcedureRequest("unknown", string(apierror.CodeNotFound))
		return nil, apierror.NotFound("procedure %q not found", name)
	}

	out, err := proc(ctx, raw)
	if err != nil {
		apiErr := apierror.From(err)
		metrics.RecordProcedureRequest(name, string(apiErr.Code))
		if apiErr.Code == apierror.CodeInternal {
			r.logger.Error("Procedure failed", zap.String("procedure", name), zap.Error(err))
		}
		return nil, apiErr
	}

	metrics.RecordProcedureRequest(name, "OK")
	return out, nil
}

// Names returns the registered procedure names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.procedures))
	for name := range r.procedures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func decodeInput(raw json.RawMessage, dest interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return json.Unmarshal(trimmed, dest)
}

// applyDefaults calls ApplyDefaults on the input, or on every element of a slice input
func applyDefaults(ptr interface{}) {
	if d, ok := ptr.(Defaulter); ok {
		d.ApplyDefaults()
		return
	}

	v := reflect.ValueOf(ptr).Elem()
	if v.Kind() != reflect.Slice {
		return
	}
	for i := 0; i < v.Len(); i++ {
		if d, ok := v.Index(i).Addr().Interface().(Defaulter); ok {
			d.ApplyDefaults()
		}
	}
}

func (r *Registry) validateInput(in interface{}) error {
	v := reflect.ValueOf(in)
	switch v.Kind() {
	case reflect.Struct:
		if err := r.validate.Struct(in); err != nil {
			return validationError("", err)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := r.validate.Struct(elem.Interface()); err != nil {
				return validationError(fmt.Sprintf("[%d]", i), err)
			}
		}
	}
	return nil
}

func validationError(prefix string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierror.BadRequest("invalid input: %v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s%s failed on '%s'", prefix, fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return apierror.BadRequest("invalid input: %s", strings.Join(msgs, "; "))
}
