package planner

import (
	"fmt"
	"strings"
)

const (
	fallbackArea       = "con dimensiones aún por definir"
	fallbackSeats      = "un número de puestos todavía flexible"
	fallbackHeight     = "no indicada"
	fallbackSpaceType  = "no indicado"
	fallbackPriority   = "no indicada"
	fallbackBudget     = "no indicado"
	fallbackNotes      = "Sin notas adicionales."
	fallbackCart       = "No se han seleccionado modelos específicos aún."
	advisorPersona     = "Eres un asesor experto en diseño de oficinas para la marca de mobiliario Mobicorp."
	advisorToneAndLang = "Respondes siempre en español, con tono profesional pero cercano."
)

// Prompt is the rendered system instruction and user turn.
type Prompt struct {
	System string
	User   string
}

// Compose renders req into a prompt under policy. It is pure and never fails.
func Compose(req PlanningRequest, policy Policy) Prompt {
	return Prompt{
		System: systemInstruction(policy),
		User:   userContent(req, policy),
	}
}

func systemInstruction(p Policy) string {
	return strings.Join([]string{
		advisorPersona,
		advisorToneAndLang,
		fmt.Sprintf("Escribes solo texto plano en %s, con %d a %d frases en total (máximo ~%d palabras).",
			paragraphPhrase(p), p.MinSentences, p.MaxSentences, p.MaxWords),
		"No usas títulos, ni listas, ni numeraciones, ni emojis, ni símbolos como *, #, -, •.",
		"Nunca uses encabezados como '1)' o '###'.",
	}, " ")
}

func paragraphPhrase(p Policy) string {
	if p.Paragraphs <= 1 {
		return "un solo párrafo"
	}
	return fmt.Sprintf("1 o %d párrafos", p.Paragraphs)
}

func userContent(req PlanningRequest, p Policy) string {
	var b strings.Builder

	b.WriteString("Datos del proyecto (no los repitas como lista en la respuesta, solo úsalos como contexto interno):\n")
	fmt.Fprintf(&b, "- Dimensiones del ambiente: %s\n", areaText(req))
	fmt.Fprintf(&b, "- Altura aproximada: %s\n", heightText(req))
	fmt.Fprintf(&b, "- Tipo de espacio: %s\n", orDefault(req.SpaceType, fallbackSpaceType))
	fmt.Fprintf(&b, "- Estilo deseado: %s\n", req.Style.Label())
	fmt.Fprintf(&b, "- Nº de puestos: %s\n", seatsText(req))
	fmt.Fprintf(&b, "- Prioridad principal: %s\n", orDefault(req.Priority, fallbackPriority))
	fmt.Fprintf(&b, "- Nivel de inversión: %s\n", orDefault(req.Budget, fallbackBudget))
	b.WriteString("\nSelección de productos (pre-carrito Mobicorp):\n")
	b.WriteString(CartSummary(req.Cart))
	b.WriteString("\n\nNotas adicionales del cliente:\n")
	b.WriteString(orDefault(req.ExtraNotes, fallbackNotes))
	b.WriteString("\n\nInstrucciones para la respuesta:\n\n")
	b.WriteString("Redacta una recomendación muy breve y fácil de leer para el cliente, explicando en general cómo conviene organizar el espacio, qué tipos de sillas o zonas serían más útiles y una idea general de combinación de mobiliario.\n\n")
	b.WriteString("La respuesta debe cumplir estrictamente estas reglas:\n")
	fmt.Fprintf(&b, "1) Extensión: entre %d y %d frases en total (máximo ~%d palabras).\n", p.MinSentences, p.MaxSentences, p.MaxWords)
	if p.Paragraphs <= 1 {
		b.WriteString("2) Usa un solo párrafo, con frases cortas.\n")
	} else {
		fmt.Fprintf(&b, "2) Usa solo 1 o %d párrafos como máximo, con frases cortas.\n", p.Paragraphs)
	}
	b.WriteString("3) No uses títulos, encabezados ni secciones. No escribas cosas como \"1)\", \"Resumen\", \"Recomendaciones finales\" ni \"###\".\n")
	b.WriteString("4) No uses listas, viñetas, guiones, numeraciones, emojis ni símbolos como *, # o •.\n")
	b.WriteString("5) Escribe en tono profesional pero cercano, como un asesor comercial que explica la idea en lenguaje simple.\n")
	b.WriteString("6) Integra los datos dentro del texto de forma natural, sin repetirlos en forma de listado.\n\n")
	b.WriteString("Devuelve únicamente el texto final para el cliente, sin explicaciones adicionales.")

	return b.String()
}

func areaText(req PlanningRequest) string {
	w, wok := req.Width.Decimal()
	l, lok := req.Length.Decimal()
	if !wok || !lok {
		return fallbackArea
	}
	if !w.IsPositive() || !l.IsPositive() {
		return fallbackArea
	}
	return fmt.Sprintf("de aproximadamente %sm x %sm (%s m²)", w.String(), l.String(), w.Mul(l).StringFixed(1))
}

func heightText(req PlanningRequest) string {
	if !req.Height.Present() {
		return fallbackHeight
	}
	return strings.TrimSpace(req.Height.Text) + " m"
}

func seatsText(req PlanningRequest) string {
	if !req.Seats.Present() {
		return fallbackSeats
	}
	return strings.TrimSpace(req.Seats.Text) + " puestos de trabajo"
}

// CartSummary renders the cart as one "- name (category, línea line) xqty" row per
// line, in the order given.
func CartSummary(lines []CartLine) string {
	if len(lines) == 0 {
		return fallbackCart
	}
	rows := make([]string, 0, len(lines))
	for _, item := range lines {
		rows = append(rows, fmt.Sprintf("- %s (%s, línea %s) x%s", item.Name, item.Category, item.Line, item.Qty))
	}
	return strings.Join(rows, "\n")
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
