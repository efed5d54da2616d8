// Package exporter writes pipeline output to disk.
//
// CSVWriter writes processed tables as plain comma-separated files: a
// header row, no index column, and empty cells for missing values.
// Relative paths resolve into the processed directory, or the reports
// directory for paths under "reports/". WriteFrame streams a dataframe row
// by row; WriteCSV and WriteTable write prepared records.
//
// Workbook gathers the EDA tables into an xlsx file, one sheet per table.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths, logger)
//	n, err := writer.WriteFrame(config.ProcessedTrainFileName, train)
//
//	wb, err := exporter.NewWorkbook()
//	defer wb.Close()
//	err = wb.AddTable(analysis.CountTable("Country", "country", counts))
//	err = wb.Save(paths.ReportFile(config.EDAWorkbookFileName))
package exporter
