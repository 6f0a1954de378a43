// Package schedule_tools exposes the appointment schedule over MCP.
//
// Query tools (always registered):
//   - schedule_list_appointments
//   - schedule_appointments_by_date
//   - schedule_appointments_by_month
//   - schedule_backup_status
//   - schedule_ask
//
// Mutation tools (registered only with write access enabled):
//   - schedule_create_appointment
//   - schedule_update_appointment
//   - schedule_update_series
//   - schedule_delete_appointment
//   - schedule_delete_series
package schedule_tools
