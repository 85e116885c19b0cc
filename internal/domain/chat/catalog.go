package chat

import "strings"

// ServiceType identifies one of the notarial services the intake flow can
// collect data for. The set is closed configuration: adding a service means
// adding a catalog entry, nothing else.
type ServiceType string

const (
	ServiceCompraVenta  ServiceType = "compra_venta"
	ServiceDonacion     ServiceType = "donacion"
	ServicePoderGeneral ServiceType = "poder_general"
)

// RequirementsCatalog is the static table of documents required per service,
// together with display names and the input synonyms the dialogue engine
// accepts. Built once at process start, never mutated afterward.
type RequirementsCatalog struct {
	order        []ServiceType
	displayNames map[ServiceType]string
	requirements map[ServiceType][]string
	synonyms     map[string]ServiceType
}

// NewRequirementsCatalog builds the catalog for the reference deployment.
func NewRequirementsCatalog() *RequirementsCatalog {
	return &RequirementsCatalog{
		order: []ServiceType{ServiceCompraVenta, ServiceDonacion, ServicePoderGeneral},
		displayNames: map[ServiceType]string{
			ServiceCompraVenta:  "Compra Venta",
			ServiceDonacion:     "Donación",
			ServicePoderGeneral: "Poder General",
		},
		requirements: map[ServiceType][]string{
			ServiceCompraVenta: {
				"Escritura",
				"Boleta de predial Actualizada",
				"Copia de INE Vigente",
				"Copia de CURP",
				"Copia de Acta de Nacimiento",
				"Copia de Constancia de Situación Fiscal",
				"Copia de Acta de Matrimonio",
			},
			ServiceDonacion: {
				"Escritura",
				"Boleta Predial actualizada",
				"Copia de INE",
				"Copia de CURP",
				"Copia de constancia de situación fiscal",
				"Copia de Acta de matrimonio",
			},
			ServicePoderGeneral: {
				"Copia de INE",
				"Copia de CURP",
				"Copia Acta de nacimiento",
				"Copia constancia de situación fiscal",
			},
		},
		synonyms: map[string]ServiceType{
			"1":             ServiceCompraVenta,
			"2":             ServiceDonacion,
			"3":             ServicePoderGeneral,
			"compra venta":  ServiceCompraVenta,
			"compra-venta":  ServiceCompraVenta,
			"donacion":      ServiceDonacion,
			"donación":      ServiceDonacion,
			"poder general": ServicePoderGeneral,
			"poder":         ServicePoderGeneral,
		},
	}
}

// Services returns the service identifiers in menu order.
func (c *RequirementsCatalog) Services() []ServiceType {
	out := make([]ServiceType, len(c.order))
	copy(out, c.order)
	return out
}

// Requirements returns the ordered document list for a service.
func (c *RequirementsCatalog) Requirements(service ServiceType) ([]string, bool) {
	reqs, ok := c.requirements[service]
	if !ok {
		return nil, false
	}
	out := make([]string, len(reqs))
	copy(out, reqs)
	return out, true
}

// DisplayName returns the human readable name for a service. Unknown
// services fall back to the raw identifier.
func (c *RequirementsCatalog) DisplayName(service ServiceType) string {
	if name, ok := c.displayNames[service]; ok {
		return name
	}
	return string(service)
}

// Known reports whether the service identifier is a catalog key.
func (c *RequirementsCatalog) Known(service ServiceType) bool {
	_, ok := c.requirements[service]
	return ok
}

// Resolve maps free-form user input to a service. The normalized form
// (trimmed, lowercased) is checked first so accented and unaccented
// variants both resolve; the raw string is a fallback.
func (c *RequirementsCatalog) Resolve(input string) (ServiceType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if service, ok := c.synonyms[normalized]; ok {
		return service, true
	}
	if service, ok := c.synonyms[input]; ok {
		return service, true
	}
	return "", false
}
