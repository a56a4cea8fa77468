// ABOUTME: System prompts for clause extraction, compliance checking, and Q&A
// ABOUTME: The wire contract is pipe-separated CSV with fixed column headers
package core

// MatrixHeader is the canonical 3-column header for clause extraction
const MatrixHeader = "Sr. No.|Requirement (clause content)|Source Reference (reference number of clause in the document)"

// ComplianceHeader is the canonical 5-column header for compliance checking
const ComplianceHeader = "Clause Number|Clause Text|Compliance Summary|Status|Reference"

// MatrixColumns are the column names of the extraction wire contract
var MatrixColumns = []string{
	"Sr. No.",
	"Requirement (clause content)",
	"Source Reference (reference number of clause in the document)",
}

// ComplianceColumns are the column names of the compliance wire contract
var ComplianceColumns = []string{
	"Clause Number",
	"Clause Text",
	"Compliance Summary",
	"Status",
	"Reference",
}

const matrixSystemPrompt = `Given a part of a specific document in markdown format containing compliance requirements and the section number of the part, create a comprehensive compliance matrix following these steps:

1. Document Analysis:
- Thoroughly review the provided document.
- Identify all sections that contain compliance requirements or standards.
- Note any existing structure or categorization within the document.

2. Requirement Extraction:
- Extract each individual requirement or standard from the document.
- Maintain the original wording of each requirement.
- Preserve any numbering or referencing system used in the document.
- Prefix the section number to the clause reference.
- If there is a table, use the same clause reference for all rows.

3. Identify Key Information:
- For each requirement, identify key pieces of information such as:
    - Any unique identifiers or reference numbers
    - The specific section or clause where the requirement is found
    - Any specified deadlines or timeframes
    - Particular actions or evidence required for compliance
    - Responsible parties or roles mentioned
    - Any associated penalties or consequences for non-compliance
- Do not change the structure or content of the clause, just add it verbatim as a compliance clause.

4. Column Definition:
- Use the following fixed columns for the matrix:
    a. Sr. No.
    b. Requirement (clause content)
    c. Source Reference (reference number of clause in the document)

5. Matrix Structure:
- Create a table with the defined columns.
- Use the pipe character (|) as the separator for the CSV format.

6. Populating the Matrix:
- Enter each requirement as a separate row in the matrix.
- Use the exact language from the source document for the requirement text.
- If certain information is not explicitly stated in the document, mark it as "Not Specified" rather than leaving it blank.

Follow these steps to create a compliance matrix that accurately reflects the structure and content of the provided document, ensuring no information is omitted or summarized.
Return only the compliance matrix in CSV format with pipe (|) as the separator and no other text along with it. The CSV must have the following header:

` + MatrixHeader

const complianceSystemPrompt = `You are a compliance analyst tasked with comparing a list of compliance clauses against extracted text from a tender document. For each clause, perform the following steps:

Carefully read and analyze the clause text.
Compare the clause requirements with the tender document text.
Provide a concise compliance summary (max 50 words) stating whether the tender document meets, partially meets, or does not meet the clause requirements.
Identify and extract the specific reference from the tender document that supports your compliance summary.
Assign a status:

"Yes" if fully compliant
"Partial" if partially compliant
"No" if not compliant

Respond in CSV format using | as the separator, with the following columns:
` + ComplianceHeader + `
Ensure that any | characters within text fields are properly escaped or replaced with an appropriate alternative.
Do not include any additional explanations or text outside of this CSV format. The first line of your response must be the CSV header, followed immediately by the data rows, one clause per row.`

const querySystemPromptFormat = `Here's the content of the file:

%s

Please answer the following question based on this content:`

const queryListSystemPromptFormat = `Here's the content of the file:

%s

Please answer the following numbered questions based on this content.
Answer each question on its own, prefixed with its number (for example "1." or "Question 1:").`
