package repository

// Schema definitions for the finregx database.
// Compatible with both SQLite and PostgreSQL.

const schemaAssessments = `
CREATE TABLE IF NOT EXISTS assessments (
    id TEXT NOT NULL,
    tenant_id TEXT NOT NULL,
    startup_name TEXT NOT NULL,
    contact_email TEXT,
    status TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    completed_at TIMESTAMP,
    PRIMARY KEY (id, tenant_id)
);

CREATE INDEX IF NOT EXISTS idx_assessments_tenant ON assessments(tenant_id);
CREATE INDEX IF NOT EXISTS idx_assessments_status ON assessments(tenant_id, status);
CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments(tenant_id, created_at);
`

// Results store the full pipeline output as JSON documents: gaps, score and
// recommendations are read back whole, never queried field by field.
const schemaResults = `
CREATE TABLE IF NOT EXISTS assessment_results (
    assessment_id TEXT NOT NULL,
    tenant_id TEXT NOT NULL,
    startup_name TEXT NOT NULL,
    facts TEXT NOT NULL,
    gaps TEXT NOT NULL,
    score TEXT NOT NULL,
    recommendations TEXT NOT NULL,
    article_matches TEXT,
    documents_analyzed TEXT,
    metadata TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (assessment_id, tenant_id)
);

CREATE INDEX IF NOT EXISTS idx_results_tenant ON assessment_results(tenant_id);
CREATE INDEX IF NOT EXISTS idx_results_created ON assessment_results(tenant_id, created_at);
`

const schemaCheckConfigs = `
CREATE TABLE IF NOT EXISTS check_configs (
    id TEXT NOT NULL,
    tenant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    version TEXT NOT NULL,
    expression TEXT NOT NULL,
    article_id TEXT,
    category TEXT,
    severity TEXT,
    status TEXT,
    gap_description TEXT,
    recommendation TEXT,
    enabled INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (id, tenant_id, version)
);

CREATE INDEX IF NOT EXISTS idx_check_configs_tenant ON check_configs(tenant_id);
CREATE INDEX IF NOT EXISTS idx_check_configs_enabled ON check_configs(tenant_id, enabled);
`

// AllSchemas returns all schema statements in order.
func AllSchemas() []string {
	return []string{
		schemaAssessments,
		schemaResults,
		schemaCheckConfigs,
	}
}
