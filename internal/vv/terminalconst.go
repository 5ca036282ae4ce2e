//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the  
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or 
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2022-24"
	PROJAUTH = "E. Gunderson"
	PROJMAIL = "Department of Classics, 125 Queen’s Park, Toronto, ON  M5S 2C7 Canada"
	PROJURL  = "https://github.com/e-gun/HipparchiaNLPNotebook"

	HELPTEXTTEMPLATE = `S3command line optionsS0:
   C1-bwC0          disable color output in the console
   C1-cfC0 C2{path}C0   read the corpus from a plaintext file instead of the bundled sample [C6currentC0: C3{{.corpus}}C0]
   C1-ckC0 C2{dir}C0    checkpoint directory for the "fs" model store [C6currentC0: C3{{.ckdir}}C0]
   C1-dhC0 C2{dir}C0    data home for downloaded collections [C6currentC0: C3{{.datahome}}C0]
   C1-dmC0 C2{name}C0   demo to run; available: C3{{.demos}}C0 [C6currentC0: C3{{.demo}}C0]
   C1-elC0 C2{num}C0    set echo server log level (C10-3C0) [C6currentC0: C3{{.echoll}}C0]
   C1-epC0 C2{num}C0    training epochs for the character model [C6currentC0: C3{{.epochs}}C0]
   C1-glC0 C2{num}C0    set golang log level (C10-5C0) [C6currentC0: C3{{.hnbll}}C0]
   C1-hC0           print this help information
   C1-mpC0 C2{name}C0   model store provider; available: C3fsC0, C3sqliteC0, and C3pgsqlC0 [C6currentC0: C3{{.provider}}C0]
   C1-otC0 C2{dir}C0    chart output directory [C6currentC0: C3{{.outdir}}C0]
   C1-pcC0          enable CPU profiling run
   C1-pmC0          enable MEM profiling run
   C1-pgC0 C2{string}C0 supply full PostgreSQL credentials C4(*)C0
   C1-raC0 C2{url}C0    use a remote annotation service instead of the local pipeline [C6currentC0: C3{{.remote}}C0]
   C1-rsC0          resume character model training from the best stored checkpoint
   C1-saC0 C2{string}C0 server IP address [C6currentC0: C3{{.host}}C0]
   C1-spC0 C2{num}C0    server port [C6currentC0: C3{{.port}}C0]
   C1-svC0          serve the demos over HTTP instead of running one in the terminal
   C1-vC0           print version info and exit
   C1-vvC0          print full version info and exit
   C1-wcC0 C2{int}C0    number of workers [C1cpu_countC0 is C3{{.cpus}}C0][C6currentC0: C3{{.workers}}C0]
     (*) S3exampleS0: 
         C4"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"hipparchiaDB\" ,\"User\": \"hippa_wr\"}"C0
     
     S1NB:S0 "C3{{.conffile}}C0" in "C3{{.home}}C0" configures everything for you; it is written on first launch.
         Per-demo settings live beside it in the "C3hnb-conf-*.jsonC0" files. 
             C3{{.projurl}}C0
`
)
