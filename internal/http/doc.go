// Package http exposes the HR directory over JSON.
//
// The router exposes the following endpoints:
//   - GET /: dashboard figures (totals, availability today, unassigned
//     employees and per-department headcount with percentages).
//   - GET /employees[?q=], POST /employees: list or search employees, add an
//     employee. Payloads use the `employeeDTO` shape from employee_handler.go.
//   - GET, PATCH, DELETE /employees/{id}: detail with the resolved department,
//     partial update, delete with cascade.
//   - GET /employees/{id}/availability: the employee and its availability entries.
//   - GET /departments[?q=], POST /departments: list with headcount, add.
//   - GET, PATCH, DELETE /departments/{id}: roster with manager and members,
//     partial update, delete which unassigns the members.
//   - GET /availability[?week=YYYY-MM-DD | ?date=YYYY-MM-DD], POST /availability:
//     Monday-start weekly calendar (default this week) or a single day, add.
//   - PATCH, DELETE /availability/{id}: edit or delete one entry.
//   - GET /healthz and GET /metrics.
//
// PATCH bodies distinguish an absent nullable field from an explicit null:
// absent leaves the value untouched, null clears it. Unknown paths and
// missing records answer 404 with a `link` to the closest listing. GET
// listings and details carry a weak ETag and honour If-None-Match.
package http
