package model

// Industry is one of the fixed industry verticals a lead can belong to.
type Industry string

const (
	IndustrySaaS          Industry = "SaaS"
	IndustryECommerce     Industry = "E-commerce"
	IndustryHealthcare    Industry = "Healthcare"
	IndustryFintech       Industry = "Fintech"
	IndustryManufacturing Industry = "Manufacturing"
	IndustryEducation     Industry = "Education"
	IndustryMarketing     Industry = "Marketing"
	IndustryLogistics     Industry = "Logistics"
	IndustryEnergy        Industry = "Energy"
	IndustryHospitality   Industry = "Hospitality"
)

// Industries lists every supported industry in display order.
var Industries = []Industry{
	IndustrySaaS,
	IndustryECommerce,
	IndustryHealthcare,
	IndustryFintech,
	IndustryManufacturing,
	IndustryEducation,
	IndustryMarketing,
	IndustryLogistics,
	IndustryEnergy,
	IndustryHospitality,
}

// Valid reports whether i is a known industry.
func (i Industry) Valid() bool {
	for _, known := range Industries {
		if i == known {
			return true
		}
	}
	return false
}

// EmployeeRange is a company-size band. Bands are ordered; see Rank.
type EmployeeRange string

const (
	Employees1To50     EmployeeRange = "1-50"
	Employees51To200   EmployeeRange = "51-200"
	Employees201To500  EmployeeRange = "201-500"
	Employees501To1000 EmployeeRange = "501-1000"
	Employees1000Plus  EmployeeRange = "1000+"
)

// EmployeeRanges lists the size bands from smallest to largest.
var EmployeeRanges = []EmployeeRange{
	Employees1To50,
	Employees51To200,
	Employees201To500,
	Employees501To1000,
	Employees1000Plus,
}

// Rank returns the 0-based position of r in EmployeeRanges, or -1 if r is
// not a known band.
func (r EmployeeRange) Rank() int {
	for i, known := range EmployeeRanges {
		if r == known {
			return i
		}
	}
	return -1
}

// Valid reports whether r is a known size band.
func (r EmployeeRange) Valid() bool {
	return r.Rank() >= 0
}

// DecisionMaker is a named contact at a lead's company.
type DecisionMaker struct {
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
	Email string `json:"email" yaml:"email"`
}

// Lead is a prospect account record supplied by the catalog. Leads are never
// mutated once loaded.
type Lead struct {
	ID                string          `json:"id" yaml:"id"`
	CompanyName       string          `json:"companyName" yaml:"companyName"`
	Industry          Industry        `json:"industry" yaml:"industry"`
	Location          string          `json:"location" yaml:"location"`
	EmployeeRange     EmployeeRange   `json:"employeeRange" yaml:"employeeRange"`
	Website           string          `json:"website" yaml:"website"`
	AnnualRevenue     float64         `json:"annualRevenue" yaml:"annualRevenue"`
	Description       string          `json:"description" yaml:"description"`
	Technologies      []string        `json:"technologies" yaml:"technologies"`
	Intents           []string        `json:"intents" yaml:"intents"`
	Highlights        []string        `json:"highlights" yaml:"highlights"`
	RecentInitiatives []string        `json:"recentInitiatives" yaml:"recentInitiatives"`
	DecisionMakers    []DecisionMaker `json:"decisionMakers" yaml:"decisionMakers"`
}
