package script

import "github.com/courtdata/querydesk/internal/library"

// demoScripts are the built-in record sets used when a section's script file
// is missing or unreadable. The statements target the court program schema
// (PARTICIPANT, MHC_ENROLLMENT, diagnosis, charge, and outcome tables).
var demoScripts = map[library.Section]string{
	library.SectionDemographics: `-- name: Participant roster
-- description: All participants with their demographic details
SELECT Participant_ID, First_Name, Last_Name, Date_of_Birth, Gender, Race_Ethnicity
FROM PARTICIPANT
ORDER BY Last_Name, First_Name;

-- name: Gender breakdown
SELECT Gender, COUNT(*) AS participant_count
FROM PARTICIPANT
GROUP BY Gender;

-- name: Race and ethnicity breakdown
SELECT Race_Ethnicity, COUNT(*) AS participant_count
FROM PARTICIPANT
GROUP BY Race_Ethnicity
ORDER BY participant_count DESC;
`,

	library.SectionMentalHealth: `-- name: Diagnoses with descriptions
-- description: Participant diagnoses joined to the diagnosis code list
SELECT pd.Participant_ID, pd.Diagnosis_Code, dc.Description, pd.Assessment_Date
FROM PARTICIPANT_DIAGNOSIS pd
JOIN DIAGNOSIS_CODE dc ON pd.Diagnosis_Code = dc.Code
ORDER BY pd.Assessment_Date;

-- name: Most common diagnoses
SELECT Diagnosis_Code, COUNT(*) AS occurrence_count
FROM PARTICIPANT_DIAGNOSIS
GROUP BY Diagnosis_Code
ORDER BY occurrence_count DESC;

-- name: Treatment episodes by type
SELECT Treatment_Type, COUNT(*) AS episode_count
FROM TREATMENT_EPISODE
GROUP BY Treatment_Type;
`,

	library.SectionCriminalHistory: `-- name: Charges by participant
-- description: Charge history with offense names and classes
SELECT pc.Participant_ID, co.Offense_Name, co.Class, pc.Charge_Date, pc.Outcome
FROM PARTICIPANT_CHARGE pc
JOIN CHARGE_OFFENSE co ON pc.Offense_ID = co.Offense_ID
ORDER BY pc.Charge_Date;

-- name: Offense class distribution
SELECT co.Class, COUNT(*) AS charge_count
FROM PARTICIPANT_CHARGE pc
JOIN CHARGE_OFFENSE co ON pc.Offense_ID = co.Offense_ID
GROUP BY co.Class;

-- name: Dismissed charges
SELECT pc.Participant_ID, co.Offense_Name, pc.Charge_Date
FROM PARTICIPANT_CHARGE pc
JOIN CHARGE_OFFENSE co ON pc.Offense_ID = co.Offense_ID
WHERE pc.Outcome LIKE '%Dismissed%';
`,

	library.SectionPerformance: `-- name: Program completion status
SELECT End_Status, COUNT(*) AS participant_count
FROM MHC_ENROLLMENT
GROUP BY End_Status;

-- name: Average enrollment length
SELECT AVG(Length_Days) AS avg_days_enrolled
FROM MHC_ENROLLMENT
WHERE End_Date IS NOT NULL;

-- name: Jail days per participant
-- description: Total days incarcerated and cost per participant
SELECT Participant_ID, SUM(Days_Incarcerated) AS total_days, SUM(Cost) AS total_cost
FROM JAIL_DATA
GROUP BY Participant_ID
ORDER BY total_days DESC;
`,

	library.SectionAnalytics: `-- name: Risk level vs program outcome
-- description: Cross-tab of assessed risk category against enrollment end status
SELECT ra.Risk_Category, e.End_Status, COUNT(*) AS participant_count
FROM RISK_ASSESSMENT ra
JOIN MHC_ENROLLMENT e ON ra.Participant_ID = e.Participant_ID
GROUP BY ra.Risk_Category, e.End_Status;

-- name: Treatment coverage during enrollment
SELECT e.Participant_ID,
       COUNT(t.Participant_ID) AS treatment_episodes
FROM MHC_ENROLLMENT e
LEFT JOIN TREATMENT_EPISODE t ON e.Participant_ID = t.Participant_ID
GROUP BY e.Participant_ID;

-- name: High risk participants with jail time
SELECT ra.Participant_ID, ra.Risk_Score, SUM(j.Days_Incarcerated) AS jail_days
FROM RISK_ASSESSMENT ra
JOIN JAIL_DATA j ON ra.Participant_ID = j.Participant_ID
WHERE ra.Risk_Category = 'High'
GROUP BY ra.Participant_ID, ra.Risk_Score;
`,
}

// DemoRecords parses the built-in demo script for a section
func DemoRecords(section library.Section) []library.QueryRecord {
	text, ok := demoScripts[section]
	if !ok {
		return nil
	}

	return Parse(text, section, "demo")
}
