package assistant

import "strings"

// Category of intent detected in a chat message
type Category string

const (
	CategoryTask     Category = "task"
	CategorySchedule Category = "schedule"
	CategoryHabit    Category = "habit"
	CategoryHome     Category = "home"
	CategorySupport  Category = "support"
)

// rule binds a category to the substrings that fire it
type rule struct {
	category Category
	patterns []string
}

// The product speaks Spanish, so the patterns do too. A category fires
// if any of its patterns is a case-insensitive substring of the
// message; categories are independent and more than one can fire.
var rules = []rule{
	{CategoryTask, []string{
		"tengo que", "debo", "necesito hacer", "recordar", "pendiente",
		"tarea", "hacer", "completar", "terminar", "enviar", "llamar",
		"comprar", "revisar", "estudiar", "preparar", "organizar",
		"planificar", "agendar", "programar", "gestionar",
	}},
	{CategorySchedule, []string{
		"calendario", "agenda", "reunión", "cita", "evento",
		"programar", "agendar", "horario", "tiempo",
	}},
	{CategoryHabit, []string{
		"rutina", "hábito", "diario", "ejercicio", "meditación",
		"lectura", "agua", "descanso",
	}},
	{CategoryHome, []string{
		"luz", "temperatura", "música", "alarma", "casa", "hogar",
		"dispositivo", "encender", "apagar",
	}},
	{CategorySupport, []string{
		"problema", "error", "bug", "ayuda", "soporte", "ticket",
		"incidencia", "fallo",
	}},
}

// Detect returns the categories fired by the message, in table order
func Detect(message string) []Category {
	lower := strings.ToLower(message)

	var fired []Category
	for _, r := range rules {
		for _, p := range r.patterns {
			if strings.Contains(lower, p) {
				fired = append(fired, r.category)
				break
			}
		}
	}
	return fired
}
