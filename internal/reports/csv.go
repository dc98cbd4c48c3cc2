package reports

import (
	"fmt"
	"strconv"

	"github.com/gaibarra/33fitstudio/internal/csvexport"
	"github.com/gaibarra/33fitstudio/internal/dates"
)

// Filename builds "<name>_<rangeLabel>_<start>_<end>.csv".
func Filename(name, rangeKey string, window dates.Range) string {
	return fmt.Sprintf("%s_%s_%s_%s.csv", name, dates.RangeLabel(rangeKey), dates.ISO(window.Start), dates.ISO(window.End))
}

// SummaryCSV is the headline metrics table.
func SummaryCSV(r Report) string {
	rows := [][]string{
		{"Sesiones", strconv.Itoa(r.Summary.Sessions)},
		{"Cupo total", strconv.Itoa(r.Summary.Capacity)},
		{"Reservas", strconv.Itoa(r.Summary.Booked)},
		{"Asistencias", strconv.Itoa(r.Summary.Attended)},
		{"Faltas", strconv.Itoa(r.Summary.NoShow)},
		{"Lista de espera", strconv.Itoa(r.Summary.Waitlist)},
		{"Ocupación %", strconv.Itoa(r.Summary.OccupancyPct)},
		{"Asistencia %", strconv.Itoa(r.Summary.AttendancePct)},
		{"Faltas %", strconv.Itoa(r.Summary.NoShowPct)},
	}
	return csvexport.Generate([]string{"Métrica", "Valor"}, rows)
}

// SessionsCSV is the per-session detail table.
func SessionsCSV(r Report) string {
	rows := make([][]string, 0, len(r.SessionDetail))
	for _, st := range r.SessionDetail {
		rows = append(rows, []string{
			st.ClassName,
			st.Session.StartsAt.Format("2006-01-02 15:04"),
			strconv.Itoa(st.Session.Capacity),
			strconv.Itoa(st.Booked),
			strconv.Itoa(st.Attended),
			strconv.Itoa(st.NoShow),
			strconv.Itoa(st.Waitlist),
			strconv.Itoa(st.OccupancyPct),
		})
	}
	return csvexport.Generate(
		[]string{"Clase", "Inicio", "Cupo", "Reservas", "Asistencias", "Faltas", "Lista de espera", "Ocupación %"},
		rows,
	)
}

// ClassTypesCSV is the per-class breakdown table.
func ClassTypesCSV(r Report) string {
	rows := make([][]string, 0, len(r.ByClassType))
	for _, ct := range r.ByClassType {
		rows = append(rows, []string{
			ct.Name,
			strconv.Itoa(ct.Sessions),
			strconv.Itoa(ct.Booked),
			strconv.Itoa(ct.Attended),
			strconv.Itoa(ct.NoShow),
			strconv.Itoa(ct.AttendancePct),
		})
	}
	return csvexport.Generate(
		[]string{"Clase", "Sesiones", "Reservas", "Asistencias", "Faltas", "Asistencia %"},
		rows,
	)
}

// FullCSV concatenates the three tables into one download.
func FullCSV(r Report) string {
	return "Resumen\n" + SummaryCSV(r) +
		"\n\nSesiones\n" + SessionsCSV(r) +
		"\n\nPor clase\n" + ClassTypesCSV(r)
}
