package rpgerr

import "context"

// contextKey avoids collisions with other packages' context values.
type contextKey string

const metadataKey contextKey = "rpgerr-metadata"

// MetadataScope holds accumulated metadata inherited down a context chain.
type MetadataScope struct {
	fields map[string]any
}

// MetaField is a single key/value pair for WithMetadata.
type MetaField struct {
	Key   string
	Value any
}

// Meta builds a MetaField for use with WithMetadata.
func Meta(key string, value any) MetaField {
	return MetaField{Key: key, Value: value}
}

// WithMetadata returns a context carrying the given fields, inheriting and
// overwriting any fields already present on ctx.
func WithMetadata(ctx context.Context, fields ...MetaField) context.Context {
	scope := &MetadataScope{fields: make(map[string]any)}
	if parent, ok := ctx.Value(metadataKey).(*MetadataScope); ok && parent != nil {
		for k, v := range parent.fields {
			scope.fields[k] = v
		}
	}
	for _, f := range fields {
		scope.fields[f.Key] = f.Value
	}
	return context.WithValue(ctx, metadataKey, scope)
}

func getMetadata(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	if scope, ok := ctx.Value(metadataKey).(*MetadataScope); ok && scope != nil {
		return scope.fields
	}
	return nil
}

func applyContextMetadata(ctx context.Context, err *Error) *Error {
	if md := getMetadata(ctx); md != nil {
		for k, v := range md {
			if err.Meta == nil {
				err.Meta = make(map[string]any)
			}
			err.Meta[k] = v
		}
	}
	return err
}

// NewCtx creates an error and stamps it with any metadata carried on ctx.
func NewCtx(ctx context.Context, code Code, message string) *Error {
	return applyContextMetadata(ctx, New(code, message))
}

// NewfCtx creates a formatted error and stamps it with ctx metadata.
func NewfCtx(ctx context.Context, code Code, format string, args ...any) *Error {
	return applyContextMetadata(ctx, Newf(code, format, args...))
}
