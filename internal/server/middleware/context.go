package middleware

import "context"

type contextKey struct{ name string }

var employeeEmailKey = contextKey{"employee_email"}

// WithEmployeeEmail returns a context carrying the verified caller email.
// Handlers read it via GetEmployeeEmail.
func WithEmployeeEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, employeeEmailKey, email)
}

// GetEmployeeEmail returns the verified caller email from context and true if
// set; otherwise "", false.
func GetEmployeeEmail(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(employeeEmailKey).(string)
	return v, ok
}
