package schema

import (
	"fmt"

	"github.com/vvka-141/relload/pkg/relload"
)

// For returns the table catalog for the given import variant.
func For(v relload.Variant) (Table, error) {
	switch v {
	case relload.VariantOrg:
		return orgTable, nil
	case relload.VariantPer:
		return perTable, nil
	case relload.VariantRawFeedPer:
		return rawFeedPerTable, nil
	default:
		return Table{}, fmt.Errorf("no table catalog for variant %q: %w", v, relload.ErrInvalidConfig)
	}
}

// MustFor is For for variants known valid at compile time. It panics on an
// unknown variant and exists for table-driven tests and static wiring.
func MustFor(v relload.Variant) Table {
	t, err := For(v)
	if err != nil {
		panic(err)
	}
	return t
}

var orgTable = Table{
	DefaultName:   "releases_org_export",
	DefaultFolder: "20250922/org/csv",
	StampColumn:   "created_at",
	DropFirst:     true,
	ResumeCheck:   false,
	Columns: []Column{
		{"ABOUT_US", TypeText},
		{"CATEGORY_CRUNCHBASE", TypeText},
		{"CATEGORY_G2", TypeText},
		{"COMPANY_ENTITY_TYPE", TypeText},
		{"COMPANY_LEGAL_TYPE", TypeText},
		{"COMPANY_NAME", TypeText},
		{"COMPANY_NAME_LANGUAGE", TypeText},
		{"EMPLOYEE_COUNT_MAX", TypeInteger},
		{"EMPLOYEE_COUNT_MIN", TypeInteger},
		{"EMPLOYEE_COUNT_RANGE", TypeText},
		{"EMPLOYEE_PROFILES_ON_LINKEDIN", TypeInteger},
		{"FOUNDED", TypeInteger},
		{"HEADQUARTERS_CITY", TypeText},
		{"HEADQUARTERS_COUNTRY_CODE", TypeText},
		{"HEADQUARTERS_COUNTRY_NAME", TypeText},
		{"HEADQUARTERS_COUNTRY_REGION", TypeText},
		{"HEADQUARTERS_CONTINENT", TypeText},
		{"HEADQUARTERS_POSTCODE", TypeText},
		{"HEADQUARTERS_STATE_CODE", TypeText},
		{"HEADQUARTERS_STATE_NAME", TypeText},
		{"HEADQUARTERS_STREET", TypeText},
		{"INDUSTRY_LINKEDIN", TypeText},
		{"INDUSTRY_SIC_CODE", TypeText},
		{"INDUSTRY_SIC_DESCRIPTION", TypeText},
		{"INDUSTRY_NAICS_CODE", TypeText},
		{"INDUSTRY_NAICS_DESCRIPTION", TypeText},
		{"INDUSTRY_NAICS_2022_CODE", TypeText},
		{"INDUSTRY_NAICS_2022_DESCRIPTION", TypeText},
		{"PREDICTED_INDUSTRY_NAICS_2022_CODE", TypeText},
		{"PREDICTED_INDUSTRY_NAICS_2022_DESCRIPTION", TypeText},
		{"INDUSTRY_UK_STANDARD_2007_CODE", TypeText},
		{"INDUSTRY_UK_STANDARD_2007_DESCRIPTION", TypeText},
		{"IS_LINKEDIN_URL_CLAIMED", TypeBoolean},
		{"LINKEDIN_FOLLOWERS", TypeInteger},
		{"LINKEDIN_URL", TypeText},
		{"LINKEDIN_URL_ID", TypeNumeric},
		{"LOCATION_CITY", TypeText},
		{"LOCATION_COUNT", TypeInteger},
		{"LOCATION_COUNTRY_CODE", TypeText},
		{"LOCATION_COUNTRY_NAME", TypeText},
		{"LOCATION_COUNTRY_REGION", TypeText},
		{"LOCATION_CONTINENT", TypeText},
		{"LOCATION_IS_PRIMARY", TypeBoolean},
		{"LOCATION_POSTCODE", TypeText},
		{"LOCATION_STATE_CODE", TypeText},
		{"LOCATION_STATE_NAME", TypeText},
		{"LOCATION_STREET", TypeText},
		{"PHONE", TypeText},
		{"RBID", TypeText},
		{"REVENUE_MAX", TypeNumeric},
		{"REVENUE_MIN", TypeNumeric},
		{"REVENUE_RANGE", TypeText},
		{"SPECIALTIES", TypeText},
		{"UPDATED_AT", TypeDate},
		{"DOMAIN", TypeText},
		{"DOMAIN_TLD", TypeText},
		{"WEBSITE", TypeText},
		{"IS_WEBSITE_WORKING", TypeBoolean},
		{"IS_WEBSITE_FOR_SALE", TypeBoolean},
	},
	Indexes: []Index{
		{"idx_org_company_name", "COMPANY_NAME"},
		{"idx_org_domain", "DOMAIN"},
		{"idx_org_rbid", "RBID"},
		{"idx_org_country_code", "HEADQUARTERS_COUNTRY_CODE"},
	},
}

var perTable = Table{
	DefaultName:   "releases_per_export",
	DefaultFolder: "20250922/per/csv",
	StampColumn:   "created_at",
	DropFirst:     false,
	ResumeCheck:   true,
	Columns: []Column{
		{"LINKEDIN_URL", TypeText},
		{"ABOUT_ME", TypeText},
		{"CELLPHONE", TypeText},
		{"CITY", TypeText},
		{"COUNTRY_CODE", TypeText},
		{"COUNTRY_NAME", TypeText},
		{"COUNTRY_REGION", TypeText},
		{"CONTINENT", TypeText},
		{"DIRECT_PHONE", TypeText},
		{"EDUCATION", TypeText},
		{"FIRST_NAME", TypeText},
		{"FULL_NAME", TypeText},
		{"INTERESTS", TypeText},
		{"JOB_COUNT", TypeInteger},
		{"JOB_DESCRIPTION", TypeText},
		{"JOB_END_DATE", TypeText},
		{"JOB_IS_CURRENT", TypeBoolean},
		{"JOB_LEVEL", TypeText},
		{"JOB_LOCATION_CITY", TypeText},
		{"JOB_LOCATION_COUNTRY", TypeText},
		{"JOB_LOCATION_COUNTRY_CODE", TypeText},
		{"JOB_LOCATION_COUNTRY_REGION", TypeText},
		{"JOB_LOCATION_CONTINENT", TypeText},
		{"JOB_LOCATION_STATE", TypeText},
		{"JOB_LOCATION_STATE_CODE", TypeText},
		{"JOB_START_DATE", TypeText},
		{"JOB_ORDER_IN_PROFILE", TypeInteger},
		{"JOB_ORG_LINKEDIN_URL", TypeText},
		{"JOB_TITLE", TypeText},
		{"JOB_FUNCTION", TypeText},
		{"LANGUAGES", TypeText},
		{"LAST_NAME", TypeText},
		{"LINKEDIN_CONNECTIONS_COUNT", TypeInteger},
		{"LINKEDIN_HEADLINE", TypeText},
		{"LINKEDIN_INDUSTRY", TypeText},
		{"MIDDLE_NAME", TypeText},
		{"NICKNAME_NAME", TypeText},
		{"RBID", TypeText},
		{"RBID_ORG", TypeText},
		{"RBID_PAO", TypeText},
		{"SKILLS", TypeText},
		{"CERTIFICATIONS", TypeText},
		{"PATENTS", TypeText},
		{"PUBLICATIONS", TypeText},
		{"WEBSITES", TypeText},
		{"STATE_CODE", TypeText},
		{"STATE_NAME", TypeText},
		{"SUFFIX_NAME", TypeText},
		{"TITLE_NAME", TypeText},
		{"EMAIL_DOMAIN", TypeText},
		{"UPDATED_AT", TypeTimestamp},
		{"RN", TypeInteger},
		{"EMAIL_STATUS", TypeText},
		{"EMAIL_ADDRESS", TypeText},
		{"EMAIL_LAST_VERIFIED_AT", TypeTimestamp},
		{"PERSONA", TypeText},
	},
	Indexes: []Index{
		{"idx_per_rbid", "RBID"},
		{"idx_per_rbid_org", "RBID_ORG"},
		{"idx_per_rbid_pao", "RBID_PAO"},
		{"idx_per_full_name", "FULL_NAME"},
		{"idx_per_email", "EMAIL_ADDRESS"},
		{"idx_per_linkedin_url", "LINKEDIN_URL"},
	},
}

var rawFeedPerTable = Table{
	DefaultName:   "releases_raw_feed_per_export",
	DefaultFolder: "20250922/raw_feed_per",
	StampColumn:   "import_timestamp",
	DropFirst:     true,
	ResumeCheck:   false,
	Columns: []Column{
		{"RBID", TypeText},
		{"RBID_ORG", TypeText},
		{"RBID_PAO", TypeText},
		{"RBUUID", TypeText},
		{"CREATED_AT", TypeDate},
		{"UPDATED_AT", TypeDate},
		{"FULL_NAME", TypeText},
		{"TITLE_NAME", TypeText},
		{"FIRST_NAME", TypeText},
		{"MIDDLE_NAME", TypeText},
		{"LAST_NAME", TypeText},
		{"SUFFIX_NAME", TypeText},
		{"NICKNAME_NAME", TypeText},
		{"LINKEDIN_CONNECTIONS_COUNT", TypeInteger},
		{"ABOUT_ME", TypeText},
		{"EDUCATION", TypeText},
		{"LINKEDIN_HEADLINE", TypeText},
		{"LINKEDIN_URL", TypeText},
		{"LINKEDIN_URL_SLUG", TypeText},
		{"LINKEDIN_INDUSTRY", TypeText},
		{"CITY", TypeText},
		{"STATE_NAME", TypeText},
		{"STATE_CODE", TypeText},
		{"COUNTRY_NAME", TypeText},
		{"COUNTRY_CODE", TypeText},
		{"COUNTRY_REGION", TypeText},
		{"CONTINENT", TypeText},
		{"RBUUID_ORG", TypeText},
		{"JOB_IS_CURRENT", TypeBoolean},
		{"JOB_COUNT", TypeInteger},
		{"JOB_TITLE", TypeText},
		{"JOB_LEVEL", TypeText},
		{"JOB_FUNCTION", TypeText},
		{"JOB_DESCRIPTION", TypeText},
		{"JOB_START_DATE", TypeText},
		{"JOB_END_DATE", TypeText},
		{"JOB_LOCATION_CITY", TypeText},
		{"JOB_LOCATION_STATE", TypeText},
		{"JOB_LOCATION_STATE_CODE", TypeText},
		{"JOB_LOCATION_COUNTRY", TypeText},
		{"JOB_LOCATION_COUNTRY_CODE", TypeText},
		{"JOB_LOCATION_COUNTRY_REGION", TypeText},
		{"JOB_LOCATION_CONTINENT", TypeText},
		{"JOB_ORDER_IN_PROFILE", TypeInteger},
		{"JOB_ORG_LINKEDIN_URL", TypeText},
		{"JOB_ORG_NAME", TypeText},
		{"IS_MEMORIALIZED_PERSON", TypeBoolean},
		{"LINKEDIN_NUM_ID", TypeText},
	},
	Indexes: []Index{
		{"idx_raw_rbid", "RBID"},
		{"idx_raw_rbid_org", "RBID_ORG"},
		{"idx_raw_rbid_pao", "RBID_PAO"},
		{"idx_raw_rbuuid", "RBUUID"},
		{"idx_raw_linkedin_url", "LINKEDIN_URL"},
		{"idx_raw_linkedin_num_id", "LINKEDIN_NUM_ID"},
	},
}
