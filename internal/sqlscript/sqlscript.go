// Package sqlscript renders the DDL script that recreates the agenda tables
// on an external database server.
package sqlscript

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/example/office-agenda/internal/domain"
)

// FileName is the suggested name for a downloaded script.
const FileName = "SIBUK_PMD_DB_SCRIPT.sql"

var sqlServerTemplate = template.Must(template.New("sqlexpress").Parse(`-- Script Database MS SQL Express untuk SIBUK PMD
-- Database: {{.Database}}

CREATE DATABASE [{{.Database}}];
GO

USE [{{.Database}}];
GO

-- Tabel Users
CREATE TABLE [dbo].[Users](
	[id] [nvarchar](50) NOT NULL PRIMARY KEY,
	[name] [nvarchar](100) NOT NULL,
	[username] [nvarchar](50) NOT NULL,
	[password] [nvarchar](255) NULL,
	[role] [nvarchar](20) NOT NULL
);
GO

-- Tabel Pegawai
CREATE TABLE [dbo].[Pegawai](
	[id] [nvarchar](50) NOT NULL PRIMARY KEY,
	[nama] [nvarchar](100) NOT NULL,
	[nip] [nvarchar](50) NULL,
	[jabatan] [nvarchar](100) NULL,
	[kelas_jabatan] [nvarchar](10) NULL
);
GO

-- Tabel AgendaGroups (Header Agenda per Tanggal)
CREATE TABLE [dbo].[AgendaGroups](
	[id] [nvarchar](50) NOT NULL PRIMARY KEY,
	[title] [date] NOT NULL,
	[created_at] [datetime] NOT NULL,
	[userId] [nvarchar](50) NOT NULL
);
GO

-- Tabel AgendaItems (Detail Kegiatan)
CREATE TABLE [dbo].[AgendaItems](
	[id] [nvarchar](50) NOT NULL PRIMARY KEY,
	[groupId] [nvarchar](50) NOT NULL,
	[waktu] [nvarchar](50) NOT NULL,
	[tempat] [nvarchar](100) NOT NULL,
	[acara] [nvarchar](255) NOT NULL,
	[manual_keterangan] [nvarchar](max) NULL,
	FOREIGN KEY (groupId) REFERENCES AgendaGroups(id)
);
GO

-- Tabel Relasi Kehadiran (Agenda - Pegawai)
CREATE TABLE [dbo].[AgendaAttendees](
	[agendaId] [nvarchar](50) NOT NULL,
	[pegawaiId] [nvarchar](50) NOT NULL,
	PRIMARY KEY (agendaId, pegawaiId),
	FOREIGN KEY (agendaId) REFERENCES AgendaItems(id),
	FOREIGN KEY (pegawaiId) REFERENCES Pegawai(id)
);
GO
`))

var mysqlTemplate = template.Must(template.New("mysql").Parse("-- Script Database MySQL untuk SIBUK PMD\n" +
	"-- Database: {{.Database}}\n\n" +
	"CREATE DATABASE IF NOT EXISTS `{{.Database}}` CHARACTER SET utf8mb4;\n" +
	"USE `{{.Database}}`;\n\n" +
	"CREATE TABLE Users (\n" +
	"\tid VARCHAR(50) NOT NULL PRIMARY KEY,\n" +
	"\tname VARCHAR(100) NOT NULL,\n" +
	"\tusername VARCHAR(50) NOT NULL,\n" +
	"\tpassword VARCHAR(255) NULL,\n" +
	"\trole VARCHAR(20) NOT NULL\n" +
	");\n\n" +
	"CREATE TABLE Pegawai (\n" +
	"\tid VARCHAR(50) NOT NULL PRIMARY KEY,\n" +
	"\tnama VARCHAR(100) NOT NULL,\n" +
	"\tnip VARCHAR(50) NULL,\n" +
	"\tjabatan VARCHAR(100) NULL,\n" +
	"\tkelas_jabatan VARCHAR(10) NULL\n" +
	");\n\n" +
	"CREATE TABLE AgendaGroups (\n" +
	"\tid VARCHAR(50) NOT NULL PRIMARY KEY,\n" +
	"\ttitle DATE NOT NULL,\n" +
	"\tcreated_at DATETIME NOT NULL,\n" +
	"\tuserId VARCHAR(50) NOT NULL\n" +
	");\n\n" +
	"CREATE TABLE AgendaItems (\n" +
	"\tid VARCHAR(50) NOT NULL PRIMARY KEY,\n" +
	"\tgroupId VARCHAR(50) NOT NULL,\n" +
	"\twaktu VARCHAR(50) NOT NULL,\n" +
	"\ttempat VARCHAR(100) NOT NULL,\n" +
	"\tacara VARCHAR(255) NOT NULL,\n" +
	"\tmanual_keterangan TEXT NULL,\n" +
	"\tFOREIGN KEY (groupId) REFERENCES AgendaGroups(id)\n" +
	");\n\n" +
	"CREATE TABLE AgendaAttendees (\n" +
	"\tagendaId VARCHAR(50) NOT NULL,\n" +
	"\tpegawaiId VARCHAR(50) NOT NULL,\n" +
	"\tPRIMARY KEY (agendaId, pegawaiId),\n" +
	"\tFOREIGN KEY (agendaId) REFERENCES AgendaItems(id),\n" +
	"\tFOREIGN KEY (pegawaiId) REFERENCES Pegawai(id)\n" +
	");\n"))

// Generate renders the schema script for the descriptor's provider. An empty
// provider means SQL Server Express.
func Generate(descriptor domain.DatabaseDescriptor) (string, error) {
	name := strings.TrimSpace(descriptor.Database)
	if name == "" {
		return "", fmt.Errorf("sqlscript: database name is required")
	}
	if strings.ContainsAny(name, "[]`;\n\r") {
		return "", fmt.Errorf("sqlscript: database name %q contains reserved characters", name)
	}

	var tmpl *template.Template
	switch descriptor.Provider {
	case domain.DatabaseProviderSQLExpress, "":
		tmpl = sqlServerTemplate
	case domain.DatabaseProviderMySQL:
		tmpl = mysqlTemplate
	default:
		return "", fmt.Errorf("sqlscript: unsupported provider %q", descriptor.Provider)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Database string }{name}); err != nil {
		return "", fmt.Errorf("sqlscript: render: %w", err)
	}
	return buf.String(), nil
}
