// Package docs sirve el documento OpenAPI de la API en /swagger/doc.json.
// Las rutas siguen las anotaciones @Router de cada handler; los esquemas
// en definitions reflejan los DTO de request y response de cada módulo.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/animals": {
			"post": {
				"description": "Registra un bovino. Código, alias, sexo, fecha de nacimiento y peso inicial son obligatorios.",
				"produces": [
					"application/json"
				],
				"tags": [
					"animals"
				],
				"summary": "Registrar animal",
				"parameters": [
					{
						"description": "Datos del animal",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/animals.createAnimalRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/animals.AnimalResponse"
						}
					},
					"400": {
						"description": "invalid json / validación",
						"schema": {
							"type": "string"
						}
					},
					"409": {
						"description": "código duplicado",
						"schema": {
							"type": "string"
						}
					}
				}
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"animals"
				],
				"summary": "Listar animales",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/animals.AnimalResponse"
							}
						}
					}
				}
			}
		},
		"/animals/total": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"animals"
				],
				"summary": "Total de animales registrados",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "integer"
							}
						}
					}
				}
			}
		},
		"/animals/bulk": {
			"post": {
				"description": "Inserta todos los animales o ninguno.",
				"produces": [
					"application/json"
				],
				"tags": [
					"animals"
				],
				"summary": "Registro masivo de animales",
				"parameters": [
					{
						"description": "Lote de animales",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/animals.createAnimalRequest"
							}
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/animals.AnimalResponse"
							}
						}
					},
					"400": {
						"description": "invalid json / validación",
						"schema": {
							"type": "string"
						}
					},
					"409": {
						"description": "código duplicado",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/animals/import/template": {
			"get": {
				"produces": [
					"text/csv"
				],
				"tags": [
					"animals"
				],
				"summary": "Descargar plantilla CSV",
				"responses": {
					"200": {
						"description": "plantilla",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/animals/import": {
			"post": {
				"description": "Procesa fila por fila; las filas inválidas se reportan con su número (desde 2).",
				"produces": [
					"application/json"
				],
				"tags": [
					"animals"
				],
				"summary": "Importar animales desde CSV",
				"parameters": [
					{
						"type": "file",
						"description": "Archivo CSV",
						"name": "file",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/animals.ImportResult"
						}
					},
					"400": {
						"description": "archivo ausente o inválido",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/stages": {
			"get": {
				"description": "Orden canónico de etapas y, dentro de cada etapa, mayor edad primero.",
				"produces": [
					"application/json"
				],
				"tags": [
					"stages"
				],
				"summary": "Animales vivos por etapa",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/animals.AnimalResponse"
							}
						}
					}
				}
			}
		},
		"/stages/catalog": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"stages"
				],
				"summary": "Etapas presentes en el hato",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/stages/stats": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"stages"
				],
				"summary": "Estadísticas por etapa",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/animals.stageStatsResponse"
						}
					}
				}
			}
		},
		"/stages/transitions": {
			"get": {
				"description": "Solo Lactante, Cría y Crecimiento; menos meses restantes primero.",
				"produces": [
					"application/json"
				],
				"tags": [
					"stages"
				],
				"summary": "Próximos cambios de etapa",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/animals.transitionResponse"
							}
						}
					}
				}
			}
		},
		"/stages/weights": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"stages"
				],
				"summary": "Comparativo de pesos por etapa",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/lifecycle.WeightStats"
							}
						}
					}
				}
			}
		},
		"/stages/age-range": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"stages"
				],
				"summary": "Animales vivos por rango de edad (meses)",
				"parameters": [
					{
						"type": "integer",
						"description": "Edad mínima en meses",
						"name": "min_age",
						"in": "query",
						"required": true
					},
					{
						"type": "integer",
						"description": "Edad máxima en meses",
						"name": "max_age",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/animals.AnimalResponse"
							}
						}
					},
					"400": {
						"description": "parámetros inválidos",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/stages/{stage}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"stages"
				],
				"summary": "Animales vivos de una etapa",
				"parameters": [
					{
						"type": "string",
						"description": "Etapa\" Enums(Lactante, Cría, Crecimiento, Vaca, Toro)",
						"name": "stage",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/animals.AnimalResponse"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/animals.invalidStageResponse"
						}
					}
				}
			}
		},
		"/animals/{animalID}/record": {
			"get": {
				"description": "Datos del animal, código y alias de madre y padre, y vacunas aplicadas (más reciente primero) con su urgencia.",
				"produces": [
					"application/json"
				],
				"tags": [
					"animals"
				],
				"summary": "Ficha del animal",
				"parameters": [
					{
						"type": "string",
						"description": "ID del animal",
						"name": "animalID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/records.sheetResponse"
						}
					},
					"404": {
						"description": "animal not found",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/vaccines/catalog": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"vaccines"
				],
				"summary": "Catálogo de vacunas",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/vaccines.vaccineResponse"
							}
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"vaccines"
				],
				"summary": "Agregar vacuna al catálogo",
				"parameters": [
					{
						"description": "Vacuna; name obligatorio",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/vaccines.createVaccineRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/vaccines.vaccineResponse"
						}
					},
					"400": {
						"description": "invalid json / name requerido",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/vaccines/applications": {
			"post": {
				"description": "Animal, vacuna y fecha de aplicación son obligatorios. La próxima dosis es opcional.",
				"produces": [
					"application/json"
				],
				"tags": [
					"vaccines"
				],
				"summary": "Registrar aplicación de vacuna",
				"parameters": [
					{
						"description": "Aplicación; fechas YYYY-MM-DD",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/vaccines.applyVaccineRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/vaccines.ApplicationResponse"
						}
					},
					"400": {
						"description": "invalid json / fechas inválidas",
						"schema": {
							"type": "string"
						}
					},
					"404": {
						"description": "animal o vacuna no existe",
						"schema": {
							"type": "string"
						}
					}
				}
			},
			"get": {
				"description": "Próxima dosis ascendente; sin próxima dosis al final.",
				"produces": [
					"application/json"
				],
				"tags": [
					"vaccines"
				],
				"summary": "Listar aplicaciones con su urgencia",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/vaccines.ApplicationResponse"
							}
						}
					}
				}
			}
		},
		"/vaccines/applications/semaphore": {
			"get": {
				"description": "Agrupa las aplicaciones de animales vivos en urgent, upcoming, on_time y undated.",
				"produces": [
					"application/json"
				],
				"tags": [
					"vaccines"
				],
				"summary": "Semáforo de vacunación",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/vaccines.semaphoreResponse"
						}
					}
				}
			}
		},
		"/vaccines/applications/urgent": {
			"get": {
				"description": "Animales vivos con dosis vencida o dentro de los próximos 30 días, con días de atraso.",
				"produces": [
					"application/json"
				],
				"tags": [
					"vaccines"
				],
				"summary": "Vacunas urgentes y próximas",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/vaccines.ApplicationResponse"
							}
						}
					}
				}
			}
		},
		"/vaccines/applications/animal/{animalID}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"vaccines"
				],
				"summary": "Historial de vacunas de un animal",
				"parameters": [
					{
						"type": "string",
						"description": "ID del animal",
						"name": "animalID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/vaccines.ApplicationResponse"
							}
						}
					}
				}
			}
		},
		"/vaccines/applications/{applicationID}/next-dose": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"vaccines"
				],
				"summary": "Actualizar próxima dosis",
				"parameters": [
					{
						"type": "string",
						"description": "ID de la aplicación",
						"name": "applicationID",
						"in": "path",
						"required": true
					},
					{
						"description": "next_dose_on obligatorio",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/vaccines.updateNextDoseRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/vaccines.ApplicationResponse"
						}
					},
					"400": {
						"description": "fecha inválida",
						"schema": {
							"type": "string"
						}
					},
					"404": {
						"description": "aplicación no existe",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/vaccines/applications/{applicationID}": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"vaccines"
				],
				"summary": "Actualizar fechas de una aplicación",
				"parameters": [
					{
						"type": "string",
						"description": "ID de la aplicación",
						"name": "applicationID",
						"in": "path",
						"required": true
					},
					{
						"description": "Ambas fechas obligatorias",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/vaccines.updateApplicationRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/vaccines.ApplicationResponse"
						}
					},
					"400": {
						"description": "fechas inválidas",
						"schema": {
							"type": "string"
						}
					},
					"404": {
						"description": "aplicación no existe",
						"schema": {
							"type": "string"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"vaccines"
				],
				"summary": "Eliminar aplicación",
				"parameters": [
					{
						"type": "string",
						"description": "ID de la aplicación",
						"name": "applicationID",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "aplicación no existe",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"animals.AnimalResponse": {
			"type": "object",
			"properties": {
				"age_months": {
					"type": "number"
				},
				"alias": {
					"type": "string"
				},
				"birth_date": {
					"type": "string"
				},
				"birth_place": {
					"type": "string"
				},
				"breed": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"color": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				},
				"discharge_date": {
					"type": "string"
				},
				"discharge_reason": {
					"type": "string"
				},
				"ear_tag": {
					"type": "string"
				},
				"farm_id": {
					"type": "string"
				},
				"farm_name": {
					"type": "string"
				},
				"father_id": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"initial_weight_kg": {
					"type": "number"
				},
				"last_weight_kg": {
					"type": "number"
				},
				"mother_id": {
					"type": "string"
				},
				"origin": {
					"type": "string"
				},
				"rfid": {
					"type": "string"
				},
				"sex": {
					"$ref": "#/definitions/lifecycle.Sex"
				},
				"stage": {
					"$ref": "#/definitions/lifecycle.Stage"
				},
				"status": {
					"$ref": "#/definitions/animals.Status"
				}
			}
		},
		"animals.ImportResult": {
			"type": "object",
			"properties": {
				"errors": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/animals.RowError"
					}
				},
				"registered": {
					"type": "integer"
				},
				"total": {
					"type": "integer"
				}
			}
		},
		"animals.RowError": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"row": {
					"type": "integer"
				}
			}
		},
		"animals.Status": {
			"type": "string",
			"enum": [
				"VIVO",
				"MUERTO"
			],
			"x-enum-varnames": [
				"StatusAlive",
				"StatusDeceased"
			]
		},
		"animals.createAnimalRequest": {
			"type": "object",
			"properties": {
				"alias": {
					"type": "string"
				},
				"birth_date": {
					"type": "string"
				},
				"birth_place": {
					"type": "string"
				},
				"breed": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"color": {
					"type": "string"
				},
				"discharge_date": {
					"type": "string"
				},
				"discharge_reason": {
					"type": "string"
				},
				"ear_tag": {
					"type": "string"
				},
				"farm_id": {
					"type": "string"
				},
				"father_id": {
					"type": "string"
				},
				"initial_weight_kg": {
					"type": "number"
				},
				"mother_id": {
					"type": "string"
				},
				"origin": {
					"type": "string"
				},
				"rfid": {
					"type": "string"
				},
				"sex": {
					"type": "string",
					"enum": [
						"H",
						"M"
					]
				},
				"status": {
					"type": "string",
					"enum": [
						"VIVO",
						"MUERTO"
					]
				}
			}
		},
		"animals.invalidStageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"valid_stages": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/lifecycle.Stage"
					}
				}
			}
		},
		"animals.stageStatsResponse": {
			"type": "object",
			"properties": {
				"by_stage": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/lifecycle.StageStats"
					}
				},
				"totals": {
					"$ref": "#/definitions/lifecycle.Totals"
				}
			}
		},
		"animals.transitionResponse": {
			"type": "object",
			"properties": {
				"animal": {
					"$ref": "#/definitions/animals.AnimalResponse"
				},
				"current_stage": {
					"$ref": "#/definitions/lifecycle.Stage"
				},
				"months_remaining": {
					"type": "number"
				},
				"next_stage": {
					"$ref": "#/definitions/lifecycle.Stage"
				}
			}
		},
		"lifecycle.Sex": {
			"type": "string",
			"enum": [
				"H",
				"M"
			],
			"x-enum-varnames": [
				"SexFemale",
				"SexMale"
			]
		},
		"lifecycle.Stage": {
			"type": "string",
			"enum": [
				"Lactante",
				"Cría",
				"Crecimiento",
				"Vaca",
				"Toro",
				"N/A"
			],
			"x-enum-varnames": [
				"StageLactante",
				"StageCria",
				"StageCrecimiento",
				"StageVaca",
				"StageToro",
				"StageNone"
			]
		},
		"lifecycle.StageStats": {
			"type": "object",
			"properties": {
				"avg_age_months": {
					"type": "number"
				},
				"avg_weight": {
					"type": "number"
				},
				"females": {
					"type": "integer"
				},
				"males": {
					"type": "integer"
				},
				"max_age_months": {
					"type": "number"
				},
				"max_weight": {
					"type": "number"
				},
				"min_age_months": {
					"type": "number"
				},
				"min_weight": {
					"type": "number"
				},
				"stage": {
					"$ref": "#/definitions/lifecycle.Stage"
				},
				"total": {
					"type": "integer"
				},
				"with_weight": {
					"type": "integer"
				}
			}
		},
		"lifecycle.Totals": {
			"type": "object",
			"properties": {
				"animals": {
					"type": "integer"
				},
				"females": {
					"type": "integer"
				},
				"males": {
					"type": "integer"
				}
			}
		},
		"lifecycle.Urgency": {
			"type": "string",
			"enum": [
				"undated",
				"on_time",
				"upcoming",
				"urgent"
			],
			"x-enum-varnames": [
				"UrgencyUndated",
				"UrgencyOnTime",
				"UrgencyUpcoming",
				"UrgencyUrgent"
			]
		},
		"lifecycle.WeightStats": {
			"type": "object",
			"properties": {
				"avg_weight": {
					"type": "number"
				},
				"max_weight": {
					"type": "number"
				},
				"min_weight": {
					"type": "number"
				},
				"stage": {
					"$ref": "#/definitions/lifecycle.Stage"
				},
				"with_weight": {
					"type": "integer"
				}
			}
		},
		"records.parentResponse": {
			"type": "object",
			"properties": {
				"alias": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"id": {
					"type": "string"
				}
			}
		},
		"records.sheetResponse": {
			"type": "object",
			"properties": {
				"animal": {
					"$ref": "#/definitions/animals.AnimalResponse"
				},
				"father": {
					"$ref": "#/definitions/records.parentResponse"
				},
				"mother": {
					"$ref": "#/definitions/records.parentResponse"
				},
				"vaccinations": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/vaccines.ApplicationResponse"
					}
				}
			}
		},
		"vaccines.ApplicationResponse": {
			"type": "object",
			"properties": {
				"animal_alias": {
					"type": "string"
				},
				"animal_code": {
					"type": "string"
				},
				"animal_id": {
					"type": "string"
				},
				"animal_status": {
					"$ref": "#/definitions/animals.Status"
				},
				"applied_on": {
					"type": "string"
				},
				"days_overdue": {
					"type": "integer"
				},
				"id": {
					"type": "string"
				},
				"next_dose_on": {
					"type": "string"
				},
				"urgency": {
					"type": "string",
					"enum": [
						"undated",
						"on_time",
						"upcoming",
						"urgent"
					]
				},
				"vaccine_description": {
					"type": "string"
				},
				"vaccine_id": {
					"type": "string"
				},
				"vaccine_name": {
					"type": "string"
				}
			}
		},
		"vaccines.applyVaccineRequest": {
			"type": "object",
			"properties": {
				"animal_id": {
					"type": "string"
				},
				"applied_on": {
					"type": "string"
				},
				"next_dose_on": {
					"type": "string"
				},
				"vaccine_id": {
					"type": "string"
				}
			}
		},
		"vaccines.createVaccineRequest": {
			"type": "object",
			"properties": {
				"description": {
					"type": "string"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"vaccines.semaphoreResponse": {
			"type": "object",
			"properties": {
				"counts": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				},
				"on_time": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/vaccines.ApplicationResponse"
					}
				},
				"today": {
					"type": "string"
				},
				"undated": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/vaccines.ApplicationResponse"
					}
				},
				"upcoming": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/vaccines.ApplicationResponse"
					}
				},
				"urgent": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/vaccines.ApplicationResponse"
					}
				}
			}
		},
		"vaccines.updateApplicationRequest": {
			"type": "object",
			"properties": {
				"applied_on": {
					"type": "string"
				},
				"next_dose_on": {
					"type": "string"
				}
			}
		},
		"vaccines.updateNextDoseRequest": {
			"type": "object",
			"properties": {
				"next_dose_on": {
					"type": "string"
				}
			}
		},
		"vaccines.vaccineResponse": {
			"type": "object",
			"properties": {
				"created_at": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Livestock Records API",
	Description:      "Registro de ganado: etapas de vida, vacunación y ficha por animal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
